package model

import "time"

const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusQuoted    = "quoted"
	EnquiryStatusConverted = "converted"
	EnquiryStatusLost      = "lost"
)

// Enquiry is an incoming sales lead. Converting an enquiry produces a
// tentative booking and freezes the enquiry in the converted status.
type Enquiry struct {
	ID             string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClientName     string `json:"clientName" bson:"client_name" validate:"required,min=2,max=100"`
	ContactPhone   string `json:"contactPhone,omitempty" bson:"contact_phone,omitempty" validate:"omitempty,e164"`
	EventType      string `json:"eventType" bson:"event_type" validate:"required,min=2,max=100"`
	ExpectedGuests int    `json:"expectedGuests,omitempty" bson:"expected_guests,omitempty" validate:"omitempty,min=0,max=10000"`
	PreferredVenue string `json:"preferredVenue,omitempty" bson:"preferred_venue,omitempty" validate:"omitempty,max=100"`
	EventDate      string `json:"eventDate,omitempty" bson:"event_date,omitempty"`
	Status         string `json:"status" bson:"status" validate:"required,oneof=new contacted quoted converted lost"`

	SalespersonID Identifier      `json:"salespersonId,omitempty" bson:"salesperson_id,omitempty"`
	CreatedBy     Identifier      `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	Salesperson   *SalespersonRef `json:"salesperson,omitempty" bson:"salesperson,omitempty"`

	FollowUpAt *time.Time `json:"followUpAt,omitempty" bson:"follow_up_at,omitempty"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	CreatedAt  time.Time  `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func (e *Enquiry) Owner() OwnerRef {
	if e == nil {
		return OwnerRef{}
	}
	ref := OwnerRef{
		SalespersonID: e.SalespersonID.String(),
		CreatedBy:     e.CreatedBy.String(),
	}
	if e.Salesperson != nil {
		ref.EmbeddedID = e.Salesperson.ID.String()
	}
	return ref
}

// EnquiryUpdate carries partial updates for PATCH requests.
type EnquiryUpdate struct {
	ClientName     string     `json:"clientName,omitempty" validate:"omitempty,min=2,max=100"`
	ContactPhone   *string    `json:"contactPhone,omitempty"`
	EventType      string     `json:"eventType,omitempty" validate:"omitempty,min=2,max=100"`
	ExpectedGuests *int       `json:"expectedGuests,omitempty" validate:"omitempty,min=0,max=10000"`
	PreferredVenue *string    `json:"preferredVenue,omitempty" validate:"omitempty,max=100"`
	EventDate      *string    `json:"eventDate,omitempty"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=new contacted quoted converted lost"`
	FollowUpAt     *time.Time `json:"followUpAt,omitempty"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
