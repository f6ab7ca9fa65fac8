package errors

import "errors"

var (
	ErrNotFound       = errors.New("quotation not found")
	ErrInvalidID      = errors.New("invalid quotation id")
	ErrEnquiryMissing = errors.New("enquiry for quotation not found")
)
