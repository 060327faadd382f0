package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrPersist marks a store write that failed after the local cache was
	// already advanced. The operation result is still valid locally.
	ErrPersist = errors.New("store write failed")

	// ErrInvalidBackup is returned when a backup document cannot be imported.
	ErrInvalidBackup = errors.New("invalid backup format")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s - %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// WriteFailure is a single failed store write.
type WriteFailure struct {
	Collection Collection
	Op         WriteOp
	ID         string
	Err        error
}

// PersistError reports store writes that failed while the local cache was
// advanced optimistically. errors.Is(err, ErrPersist) is true for it.
type PersistError struct {
	Failures []WriteFailure
}

func (e *PersistError) Error() string {
	if len(e.Failures) == 1 {
		f := e.Failures[0]
		return fmt.Sprintf("persist: %s %s %s: %v", f.Op, f.Collection, f.ID, f.Err)
	}
	return fmt.Sprintf("persist: %d writes failed", len(e.Failures))
}

func (e *PersistError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	errs = append(errs, ErrPersist)
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
