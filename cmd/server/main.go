// Package main implements the entry point for the Minty API server, which
// serves the MapleStory game reference, the marketplace and guild pages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml if present)")
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateCmd); err != nil {
		log.Printf("minty-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or serves
// HTTP until ctx is canceled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, logger)
	}

	shutdownTracing, err := setupAppTracing(ctx, cfg, logger)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	app.shutdownTracing = shutdownTracing

	return app.Run(ctx)
}
