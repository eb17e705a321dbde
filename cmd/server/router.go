package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mintyhq/minty-api/internal/api"
	apiMiddleware "github.com/mintyhq/minty-api/internal/api/middleware"
	"github.com/mintyhq/minty-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(
		apiMiddleware.NewTraceMiddleware(app.logger),
	) // Add trace IDs, spans and request loggers

	catalogHandler := api.NewCatalogHandler(app.catalogService, app.logger)
	guildHandler := api.NewGuildHandler(app.guildService, app.logger)

	// Register routes; {version} selects the representation (v1, v2)
	r.Route("/api/{version}", func(r chi.Router) {
		api.RegisterRoutes(r, catalogHandler, guildHandler)
	})

	r.Get("/health", app.health)

	return r
}

// health reports whether the database is reachable.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := app.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
