package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Field wraps a single comparable value. Two fields are equal when their
// values are equal, so a Field can be used directly as a map key.
type Field[T comparable] struct {
	value T
}

// NewField returns a Field holding v.
func NewField[T comparable](v T) Field[T] {
	return Field[T]{value: v}
}

// Value returns the wrapped value.
func (f Field[T]) Value() T {
	return f.value
}

// Equal reports whether f and other wrap the same value.
func (f Field[T]) Equal(other Field[T]) bool {
	return f.value == other.value
}

func (f Field[T]) String() string {
	return fmt.Sprint(f.value)
}

// Name is the contact name of a Record. It keys the Record in an AddressBook.
type Name struct {
	Field[string]
}

// NewName returns a Name for s.
// Returns ErrValidation if s is empty or blank.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	return Name{NewField(s)}, nil
}

// phonePattern matches exactly ten decimal digits and nothing else.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Phone is a phone number of exactly ten decimal digits.
type Phone struct {
	Field[string]
}

// NewPhone returns a Phone for s. The value is not trimmed or normalized.
// Returns ErrValidation unless s consists of exactly ten digits.
func NewPhone(s string) (Phone, error) {
	if !phonePattern.MatchString(s) {
		return Phone{}, fmt.Errorf("%w: phone %q should consist of 10 digits", ErrValidation, s)
	}
	return Phone{NewField(s)}, nil
}
