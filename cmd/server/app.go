package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/events"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
	"github.com/mintyhq/minty-api/internal/platform/tracing"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/service"
	"github.com/mintyhq/minty-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *gorm.DB

	// Stores (using interfaces for proper abstraction)
	records store.RecordStore
	guilds  store.GuildStore

	// Service interfaces
	catalogService service.CatalogService
	guildService   service.GuildService

	// Event system
	eventEmitter events.EventEmitter

	// shutdownTracing flushes spans; nil when tracing was never set up
	shutdownTracing tracing.Shutdown
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *gorm.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.records = postgres.NewRecords(db, logger)
	app.guilds = postgres.NewGuilds(db, logger)

	// Initialize event emitter; lifecycle events are logged for now
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))
	app.eventEmitter = emitter

	var err error
	app.catalogService, err = service.NewCatalogService(
		app.records,
		render.NewRegistry(),
		app.eventEmitter,
		logger,
		service.WithPageSize(cfg.API.DefaultPageSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.guildService, err = service.NewGuildService(app.records, app.guilds, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		if err := app.shutdownTracing(ctx); err != nil {
			app.logger.Error("Error flushing traces", "error", err)
		}
		cancel()
	}

	if app.db != nil {
		if sqlDB, err := app.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.logger.Error("Error closing database connection", "error", err)
			}
		}
	}

	app.logger.Info("Application shutdown completed")
}
