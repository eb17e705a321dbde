package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mintyhq/minty-api/internal/api/shared"
	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrUnknownKind):
		return http.StatusNotFound

	case errors.Is(err, render.ErrReadOnlyKind):
		return http.StatusMethodNotAllowed

	// Conflict errors, including the per-user tag cap
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrUnknownKind):
		return "resource not found"

	case errors.Is(err, render.ErrReadOnlyKind):
		return "this resource is read-only"

	case errors.Is(err, store.ErrLimitExceeded):
		return fmt.Sprintf("a user may apply at most %d tags to a guild", domain.MaxTagsPerUser)

	case errors.Is(err, store.ErrDuplicate):
		return "resource already exists"

	case errors.As(err, &verr):
		return verr.Message

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.Is(err, domain.ErrInvalidID):
		return "invalid id"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. Validation failures carry
// the offending field; fallback replaces the generic message on server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		opts = append(opts, shared.WithField(verr.Field))
	}
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'FameRequest.Value' Error:Field validation for 'Value' failed on the 'oneof' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "must be a valid id"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
