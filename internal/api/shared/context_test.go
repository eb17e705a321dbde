package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func withTraceSource(t *testing.T, r io.Reader) {
	t.Helper()
	prev := traceSource
	traceSource = r
	t.Cleanup(func() { traceSource = prev })
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	const otelID = "4bf92f3577b34da6a3ce929d0e0e4736"
	withID := WithTraceID(ctx, otelID)
	assert.Equal(t, otelID, GetTraceID(withID))
	assert.Empty(t, GetTraceID(ctx), "the parent context is untouched")

	generated := GetTraceID(SetTraceID(withID))
	assert.Len(t, generated, TraceIDLength*2)
	assert.NotEqual(t, otelID, generated, "SetTraceID replaces an existing ID")

	wrongType := context.WithValue(ctx, TraceIDKey, 42)
	assert.Empty(t, GetTraceID(wrongType))
}

func TestNewTraceID(t *testing.T) {
	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		id := NewTraceID()
		raw, err := hex.DecodeString(id)
		require.NoError(t, err)
		require.Len(t, raw, TraceIDLength)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 500)
}

func TestNewTraceIDFallback(t *testing.T) {
	tests := []struct {
		name   string
		source io.Reader
	}{
		{name: "source errors", source: failingReader{}},
		{name: "short read", source: io.LimitReader(rand.Reader, TraceIDLength/2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTraceSource(t, tt.source)

			first, second := NewTraceID(), NewTraceID()
			assert.Len(t, first, TraceIDLength*2)
			assert.NotEqual(t, first, second)
		})
	}
}

func TestFallbackTraceIDSameInstant(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a, b := fallbackTraceID(now), fallbackTraceID(now)

	assert.NotEqual(t, a, b, "the sequence separates IDs minted at the same instant")
	assert.Equal(t, a[:16], b[:16], "the clock half is shared")
}
