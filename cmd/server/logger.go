package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/platform/tracing"
)

// setupAppLogger configures and initializes the application logger based on config settings.
// Returns the configured logger or an error if setup fails.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}

// setupAppTracing registers the OpenTelemetry provider when tracing is
// enabled. The returned function flushes pending spans.
func setupAppTracing(ctx context.Context, cfg *config.Config, l *slog.Logger) (tracing.Shutdown, error) {
	shutdown, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	if cfg.Tracing.Enabled {
		l.Info("Tracing enabled",
			"service_name", cfg.Tracing.ServiceName,
			"sample_ratio", cfg.Tracing.SampleRatio)
	}
	return shutdown, nil
}
