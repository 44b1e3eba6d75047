package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Kind classifies an AppError. VALIDATION is the only kind the engine produces.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
)

// AppError is the error half of every engine result.
// Messages are user facing; Details locate the offending field or collection.
type AppError struct {
	Kind        Kind           `json:"kind"`
	Message     string         `json:"message"`
	Recoverable bool           `json:"recoverable"`
	Details     map[string]any `json:"details,omitempty"`

	notFound bool
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets callers match AppErrors against the package sentinels with errors.Is.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.notFound
	}
	return false
}

// NewValidation builds a recoverable VALIDATION error.
func NewValidation(message string, details map[string]any) *AppError {
	return &AppError{
		Kind:        KindValidation,
		Message:     message,
		Recoverable: true,
		Details:     details,
	}
}

// NewFieldValidation is NewValidation with the offending field recorded in Details.
func NewFieldValidation(field, message string) *AppError {
	return NewValidation(message, map[string]any{"field": field})
}

// NewRecordNotFound reports a missing id. It is a VALIDATION error that also matches ErrNotFound.
func NewRecordNotFound(collection, id string) *AppError {
	e := NewValidation(
		fmt.Sprintf("No record with id %q exists in %s.", id, collection),
		map[string]any{"collection": collection, "id": id},
	)
	e.notFound = true
	return e
}

// NewUnexpectedEmpty guards composed calls that returned neither a value nor an error.
func NewUnexpectedEmpty(operation string) *AppError {
	return NewValidation(
		fmt.Sprintf("%s returned no result.", operation),
		map[string]any{"operation": operation},
	)
}

// AsAppError extracts an *AppError from err, if any.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
