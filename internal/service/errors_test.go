package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/store"
)

func TestSentinelErrors(t *testing.T) {
	assert.ErrorIs(t, ErrUnroutableKind, domain.ErrUnknownKind)
	assert.NotErrorIs(t, ErrUnroutableKind, store.ErrNotFound)
}

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "catalog",
			op:       "create",
			err:      errors.New("database connection failed"),
			expected: "catalog service create operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "guild",
			op:       "add_tag",
			err:      nil,
			expected: "guild service add_tag operation failed",
		},
		{
			name:     "with sentinel error",
			service:  "catalog",
			op:       "retrieve",
			err:      store.ErrNotFound,
			expected: "catalog service retrieve operation failed: entity not found",
		},
		{
			name:     "empty operation name",
			service:  "guild",
			op:       "",
			err:      errors.New("invalid input"),
			expected: "guild service  operation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceErr := &ServiceError{
				Service: tt.service,
				Op:      tt.op,
				Err:     tt.err,
			}

			assert.Equal(t, tt.expected, serviceErr.Error())
		})
	}
}

func TestServiceError_ErrorsIs(t *testing.T) {
	underlyingErr := errors.New("database connection failed")
	serviceErr := &ServiceError{Service: "catalog", Op: "list", Err: underlyingErr}

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		assert.True(t, errors.Is(serviceErr, underlyingErr))
	})

	t.Run("errors.Is works through store errors", func(t *testing.T) {
		wrapped := &ServiceError{
			Service: "catalog",
			Op:      "retrieve",
			Err:     store.NewStoreError("mob", "resolve", "not visible", store.ErrNotFound),
		}
		assert.True(t, errors.Is(wrapped, store.ErrNotFound))
	})

	t.Run("errors.Is returns false for different errors", func(t *testing.T) {
		assert.False(t, errors.Is(serviceErr, errors.New("different error")))
	})
}

func TestServiceError_ErrorsAs(t *testing.T) {
	originalErr := &ServiceError{Service: "original", Op: "test", Err: errors.New("inner error")}
	wrappedErr := &ServiceError{Service: "wrapper", Op: "wrap", Err: originalErr}

	var serviceErr *ServiceError
	assert.True(t, errors.As(wrappedErr, &serviceErr))
	assert.Equal(t, "wrapper", serviceErr.Service)

	assert.True(t, errors.As(wrappedErr.Err, &serviceErr))
	assert.Equal(t, "original", serviceErr.Service)
}

func TestNewServiceError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, NewServiceError("catalog", "list", nil))
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		verr := domain.NewValidationError("price", "must be at least 0", nil)
		err := NewServiceError("catalog", "create", verr)
		assert.Same(t, verr, err)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		err := NewServiceError("catalog", "purge", store.ErrDuplicate)
		var serviceErr *ServiceError
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "purge", serviceErr.Op)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}
