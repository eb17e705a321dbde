package main

import (
	"fmt"
	"log/slog"

	"github.com/mintyhq/minty-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables and, when path is set, the given config file.
func loadAppConfig(path string) (*config.Config, error) {
	var opts []config.Option
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_page_size", cfg.API.DefaultPageSize)
	slog.Debug("Tracing configuration",
		"enabled", cfg.Tracing.Enabled,
		"endpoint_present", cfg.Tracing.Endpoint != "")

	return cfg, nil
}
