package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrVenueConflict = errors.New("booking overlaps an existing occupancy of the venue")

	ErrSlotLocked = errors.New("venue slot is being booked by another request")
)
