package model

import "time"

const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
)

type QuotationLine struct {
	Description string  `json:"description" bson:"description" validate:"required,min=1,max=200"`
	Quantity    float64 `json:"quantity" bson:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" bson:"unit_price" validate:"min=0"`
	Amount      float64 `json:"amount" bson:"amount" validate:"min=0"`
}

// Quotation is a priced offer generated from an enquiry and the catalog.
type Quotation struct {
	ID          string          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	QuoteNumber string          `json:"quoteNumber" bson:"quote_number" validate:"required"`
	EnquiryID   string          `json:"enquiryId" bson:"enquiry_id" validate:"required,mongodb"`
	ClientName  string          `json:"clientName" bson:"client_name" validate:"required,min=2,max=100"`
	Lines       []QuotationLine `json:"lines" bson:"lines" validate:"required,min=1,max=50,dive"`
	Subtotal    float64         `json:"subtotal" bson:"subtotal" validate:"min=0"`
	TaxPercent  float64         `json:"taxPercent" bson:"tax_percent" validate:"min=0,max=100"`
	TaxAmount   float64         `json:"taxAmount" bson:"tax_amount" validate:"min=0"`
	Total       float64         `json:"total" bson:"total" validate:"min=0"`
	ValidUntil  time.Time       `json:"validUntil" bson:"valid_until"`
	Status      string          `json:"status" bson:"status" validate:"required,oneof=draft sent accepted rejected"`

	SalespersonID Identifier `json:"salespersonId,omitempty" bson:"salesperson_id,omitempty"`
	CreatedBy     Identifier `json:"createdBy,omitempty" bson:"created_by,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func (q *Quotation) Owner() OwnerRef {
	if q == nil {
		return OwnerRef{}
	}
	return OwnerRef{
		SalespersonID: q.SalespersonID.String(),
		CreatedBy:     q.CreatedBy.String(),
	}
}
