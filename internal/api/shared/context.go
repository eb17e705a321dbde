package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ContextKey types the request context values set by this package.
type ContextKey string

const (
	// TraceIDKey holds the request's trace ID. The trace middleware stores the
	// OpenTelemetry trace ID here when the request has one, so log lines, spans
	// and error bodies agree.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the trace ID size in bytes. It matches an OpenTelemetry
	// trace ID and renders as 32 hex characters.
	TraceIDLength = 16
)

var (
	traceSource io.Reader = rand.Reader
	fallbackSeq atomic.Uint64
)

// SetTraceID stores a freshly generated trace ID in the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// WithTraceID stores traceID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the context's trace ID, or "" when none was set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// NewTraceID returns a random trace ID as 32 lowercase hex characters. When
// the random source fails the ID is built from the clock and a process-wide
// sequence instead, which keeps it unique within the process.
func NewTraceID() string {
	id, err := uuid.NewRandomFromReader(traceSource)
	if err != nil {
		slog.Error("trace id source failed, using clock fallback", slog.Any("error", err))
		return fallbackTraceID(time.Now())
	}
	return hex.EncodeToString(id[:])
}

func fallbackTraceID(now time.Time) string {
	var b [TraceIDLength]byte
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint64(b[8:], fallbackSeq.Add(1))
	return hex.EncodeToString(b[:])
}
