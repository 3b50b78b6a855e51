package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord indicates that a mapped record violates a record invariant
	ErrInvalidRecord = errors.New("invalid record")
)

// ValidationError represents a validation error with detailed field information.
// It wraps ErrInvalidRecord so callers can match on the sentinel.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidRecord).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}
