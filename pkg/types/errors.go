package types

import "errors"

// Standard errors. Callers match them with errors.Is; operations wrap them
// with the offending value.
var (
	// ErrValidation is returned when input does not meet a format
	// constraint, such as a phone that is not exactly ten digits.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a lookup by name or phone finds no match.
	ErrNotFound = errors.New("not found")
)
