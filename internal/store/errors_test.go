package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantDuplicate bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "not found", err: ErrNotFound, wantNotFound: true},
		{name: "wrapped not found", err: fmt.Errorf("resolve mob: %w", ErrNotFound), wantNotFound: true},
		{name: "duplicate", err: ErrDuplicate, wantDuplicate: true},
		{name: "limit exceeded is a duplicate", err: ErrLimitExceeded, wantDuplicate: true},
		{
			name:          "store error wrapping duplicate",
			err:           NewStoreError("crafting_ingredient", "create", "pair exists", ErrDuplicate),
			wantDuplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNotFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.wantDuplicate, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreErrorMessage(t *testing.T) {
	err := NewStoreError("guild_tag", "add", "tag limit reached", ErrLimitExceeded)
	assert.Equal(t,
		"add operation on guild_tag failed: tag limit reached: entity already exists: limit exceeded",
		err.Error())

	bare := NewStoreError("mob", "delete", "no row", nil)
	assert.Equal(t, "delete operation on mob failed: no row", bare.Error())
	assert.ErrorIs(t, err, ErrDuplicate)
}
