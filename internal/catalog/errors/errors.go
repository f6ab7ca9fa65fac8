package errors

import "errors"

var (
	ErrNotFound = errors.New("catalog item not found")

	ErrInvalidID = errors.New("invalid catalog item ID format")

	ErrDuplicateName = errors.New("catalog item with this name already exists")
)
