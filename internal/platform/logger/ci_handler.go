package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// CIHandler wraps a JSON handler and adds CI run metadata to every record.
type CIHandler struct {
	handler  slog.Handler
	metadata map[string]string
}

// NewCIHandler creates a CIHandler writing JSON to out.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	handlerOpts := &slog.HandlerOptions{}
	if opts != nil {
		copied := *opts
		handlerOpts = &copied
	}
	return &CIHandler{
		handler:  slog.NewJSONHandler(out, handlerOpts),
		metadata: ciMetadata(),
	}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs), metadata: h.metadata}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name), metadata: h.metadata}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()
	for key, value := range h.metadata {
		enhanced.AddAttrs(slog.String(key, value))
	}
	return h.handler.Handle(ctx, enhanced)
}

var ciEnvKeys = map[string]string{
	"GITHUB_RUN_ID":     "ci_run_id",
	"GITHUB_WORKFLOW":   "ci_workflow",
	"GITHUB_SHA":        "ci_commit",
	"GITHUB_REF_NAME":   "ci_branch",
	"GITHUB_REPOSITORY": "ci_repository",
}

func runningInCI() bool {
	return os.Getenv("CI") != ""
}

func ciMetadata() map[string]string {
	out := map[string]string{}
	for env, key := range ciEnvKeys {
		if v := os.Getenv(env); v != "" {
			out[key] = v
		}
	}
	return out
}
