package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually wrapped by a *ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTaskStatus is returned when a status is outside the task status enumeration.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err is the
// underlying cause; when nil, ErrValidation is used.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets every ValidationError match ErrValidation regardless of its cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
