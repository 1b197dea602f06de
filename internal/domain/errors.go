// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyPatch is returned when a partial update specifies no fields.
	ErrEmptyPatch = errors.New("no fields to update")
)

// ValidationError describes a validation failure for a single field.
// It wraps one of the sentinel errors above so callers can classify it
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks whether err is any of the domain validation
// errors, including the per-field Post validation sentinels.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrEmptyPatch) ||
		errors.Is(err, ErrEmptyPostID) ||
		errors.Is(err, ErrEmptyPostTitle) ||
		errors.Is(err, ErrEmptyPostContent) ||
		errors.Is(err, ErrEmptyPostAuthor)
}
