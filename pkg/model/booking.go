package model

import "time"

const (
	BookingStatusEnquiry   = "enquiry"
	BookingStatusTentative = "tentative"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Session is a single time-bounded occupancy of a venue within a booking.
// SessionDate is an ISO date-time string; only the date prefix (the part
// before 'T') participates in conflict comparison. StartTime/EndTime are
// zero-padded 24-hour HH:mm strings with half-open interval semantics.
type Session struct {
	SessionName string `json:"sessionName" bson:"session_name" validate:"required,min=1,max=100"`
	Venue       string `json:"venue" bson:"venue" validate:"required,min=1,max=100"`
	SessionDate string `json:"sessionDate" bson:"session_date" validate:"required"`
	StartTime   string `json:"startTime" bson:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"endTime" bson:"end_time" validate:"required,hhmm"`
	Headcount   int    `json:"headcount,omitempty" bson:"headcount,omitempty" validate:"omitempty,min=0,max=10000"`
}

// SalespersonRef is the embedded form of the owning salesperson carried by
// older records.
type SalespersonRef struct {
	ID   Identifier `json:"id,omitempty" bson:"id,omitempty"`
	Name string     `json:"name,omitempty" bson:"name,omitempty"`
}

// Booking is an event booking. Records predating the session model carry a
// single Hall/EventDate/EventStartTime/EventEndTime instead of Sessions;
// an empty Sessions slice signals such a legacy record.
type Booking struct {
	ID           string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClientName   string `json:"clientName" bson:"client_name" validate:"required,min=2,max=100"`
	ContactPhone string `json:"contactPhone,omitempty" bson:"contact_phone,omitempty" validate:"omitempty,e164"`
	EventType    string `json:"eventType" bson:"event_type" validate:"required,min=2,max=100"`
	Status       string `json:"status" bson:"status" validate:"required,oneof=enquiry tentative confirmed cancelled"`

	// Legacy single-venue fields, used only when Sessions is empty.
	Hall           string `json:"hall,omitempty" bson:"hall,omitempty"`
	EventDate      string `json:"eventDate,omitempty" bson:"event_date,omitempty"`
	EventStartTime string `json:"eventStartTime,omitempty" bson:"event_start_time,omitempty" validate:"omitempty,hhmm"`
	EventEndTime   string `json:"eventEndTime,omitempty" bson:"event_end_time,omitempty" validate:"omitempty,hhmm"`

	Sessions []Session `json:"sessions,omitempty" bson:"sessions,omitempty" validate:"omitempty,max=20,dive"`

	GuestCount    int    `json:"guestCount,omitempty" bson:"guest_count,omitempty" validate:"omitempty,min=0,max=10000"`
	MenuPackageID string `json:"menuPackageId,omitempty" bson:"menu_package_id,omitempty" validate:"omitempty,mongodb"`
	RoomsRequired int    `json:"roomsRequired,omitempty" bson:"rooms_required,omitempty" validate:"omitempty,min=0,max=1000"`

	SalespersonID Identifier      `json:"salespersonId,omitempty" bson:"salesperson_id,omitempty"`
	CreatedBy     Identifier      `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	Salesperson   *SalespersonRef `json:"salesperson,omitempty" bson:"salesperson,omitempty"`

	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// IsLegacy reports whether the booking predates the session model.
func (b *Booking) IsLegacy() bool {
	return len(b.Sessions) == 0
}

// OwnerRef is the ordered fallback chain of historical owner fields.
type OwnerRef struct {
	SalespersonID string
	CreatedBy     string
	EmbeddedID    string
}

func (b *Booking) Owner() OwnerRef {
	if b == nil {
		return OwnerRef{}
	}
	ref := OwnerRef{
		SalespersonID: b.SalespersonID.String(),
		CreatedBy:     b.CreatedBy.String(),
	}
	if b.Salesperson != nil {
		ref.EmbeddedID = b.Salesperson.ID.String()
	}
	return ref
}

// BookingUpdate carries partial updates for PATCH requests. Nil pointers
// and empty strings leave the stored value untouched.
type BookingUpdate struct {
	ClientName     string     `json:"clientName,omitempty" validate:"omitempty,min=2,max=100"`
	ContactPhone   *string    `json:"contactPhone,omitempty" validate:"omitempty"`
	EventType      string     `json:"eventType,omitempty" validate:"omitempty,min=2,max=100"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=enquiry tentative confirmed cancelled"`
	Hall           *string    `json:"hall,omitempty"`
	EventDate      *string    `json:"eventDate,omitempty"`
	EventStartTime *string    `json:"eventStartTime,omitempty" validate:"omitempty"`
	EventEndTime   *string    `json:"eventEndTime,omitempty" validate:"omitempty"`
	Sessions       *[]Session `json:"sessions,omitempty" validate:"omitempty,max=20,dive"`
	GuestCount     *int       `json:"guestCount,omitempty" validate:"omitempty,min=0,max=10000"`
	MenuPackageID  *string    `json:"menuPackageId,omitempty"`
	RoomsRequired  *int       `json:"roomsRequired,omitempty" validate:"omitempty,min=0,max=1000"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
