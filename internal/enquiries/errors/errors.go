package errors

import "errors"

var (
	ErrNotFound = errors.New("enquiry not found")

	ErrInvalidID = errors.New("invalid enquiry ID format")

	ErrAlreadyConverted = errors.New("enquiry has already been converted")
)
