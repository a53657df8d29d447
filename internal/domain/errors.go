package domain

import "errors"

var (
	// ErrNotFound indicates a referenced movie, user or category does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates the caller supplied a value outside the accepted contract.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates a concurrent write could not be applied.
	ErrConflict = errors.New("conflict")
)
