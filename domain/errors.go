package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrNoAffordablePeriod = errors.New("no period fits the monthly payment")
)

// InvalidInputError reports a raw amount or period that cannot be quoted:
// non-numeric, zero or negative. Out-of-range values are clamped, not
// rejected.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidInput) match even when Err carries a more
// specific cause.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewInvalidInput(field, value, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
