package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStatusConflict is returned when a check-and-set status update finds
	// the row in a different status than expected.
	ErrStatusConflict = errors.New("entity status conflict")
)
