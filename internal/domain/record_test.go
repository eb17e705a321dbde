package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBeforeCreate(t *testing.T) {
	t.Parallel()

	t.Run("assigns a public id", func(t *testing.T) {
		t.Parallel()
		var r Record
		require.NoError(t, r.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, r.PublicID)
	})

	t.Run("keeps a caller chosen id", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		r := Record{PublicID: id}
		require.NoError(t, r.BeforeCreate(nil))
		assert.Equal(t, id, r.PublicID)
	})
}

func TestRecordLifecycle(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := Record{CreatedAt: start, UpdatedAt: start}
	assert.True(t, r.Active())

	deletedAt := start.Add(time.Minute)
	r.MarkDeleted(deletedAt)
	assert.False(t, r.Active())
	assert.Equal(t, deletedAt, r.DeletedAt.Time)
	assert.Equal(t, deletedAt, r.UpdatedAt)

	// deleting again moves the stamp forward
	again := deletedAt.Add(time.Minute)
	r.MarkDeleted(again)
	assert.Equal(t, again, r.DeletedAt.Time)

	restoredAt := again.Add(time.Minute)
	assert.True(t, r.MarkRestored(restoredAt))
	assert.True(t, r.Active())
	assert.Equal(t, restoredAt, r.UpdatedAt)
	assert.Equal(t, start, r.CreatedAt)

	assert.False(t, r.MarkRestored(restoredAt.Add(time.Minute)), "restoring an active record is a no-op")
	assert.Equal(t, restoredAt, r.UpdatedAt)
}
