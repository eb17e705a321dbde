package service

import (
	"errors"
	"fmt"

	"github.com/mintyhq/minty-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Store and domain sentinels (store.ErrNotFound, store.ErrDuplicate,
// domain.ErrValidation) flow through unchanged inside the error chain
// 2. Unexpected errors are wrapped in ServiceError with the failed operation
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrUnroutableKind indicates the kind exists but is not addressable on
	// its own, such as an edge that is only reachable through its endpoints.
	// It wraps domain.ErrUnknownKind so callers see both as "no such resource".
	// API layer should map this to HTTP 404 Not Found.
	ErrUnroutableKind = fmt.Errorf("%w: not addressable", domain.ErrUnknownKind)
)

// ServiceError wraps errors from a service with the operation that failed.
type ServiceError struct {
	// Service is the service name (e.g., "catalog", "guild")
	Service string
	// Op is the operation that failed (e.g., "retrieve", "add_tag")
	Op string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with service context. It returns nil for a nil
// error and returns validation errors directly so their field survives
// untouched.
func NewServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return err
	}

	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}
