package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError so callers can match on it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a public identifier is malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnknownKind is returned when an entity kind token is not registered.
	ErrUnknownKind = errors.New("unknown entity kind")

	// ErrInvalidTag is returned when a guild tag value is not one of the fixed vocabulary.
	ErrInvalidTag = errors.New("invalid guild tag")

	// ErrInvalidFame is returned when a fame vote is neither +1 nor -1.
	ErrInvalidFame = errors.New("invalid fame value")
)

// ValidationError reports a single rejected field. Field is the external
// (JSON) name so it can be handed back to API callers as-is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError builds a ValidationError. When err is nil the error
// wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap exposes the underlying error. It always chains to ErrValidation.
func (e *ValidationError) Unwrap() []error {
	if errors.Is(e.Err, ErrValidation) {
		return []error{e.Err}
	}
	return []error{e.Err, ErrValidation}
}
