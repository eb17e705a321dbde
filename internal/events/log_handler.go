package events

import (
	"context"
	"log/slog"

	"github.com/mintyhq/minty-api/internal/platform/logger"
)

// LogHandler writes lifecycle events to the structured log. Purges are
// logged at warn level since they cannot be undone.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(log *slog.Logger) *LogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LogHandler{logger: log.With("component", "lifecycle_log")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *LifecycleEvent) error {
	level := slog.LevelInfo
	if event.Type == TypePurged {
		level = slog.LevelWarn
	}
	logger.FromContextOrDefault(ctx, h.logger).Log(ctx, level, "entity lifecycle event",
		slog.String("event_type", event.Type),
		slog.String("kind", event.Kind),
		slog.String("public_id", event.PublicID.String()),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}
