package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mintyhq/minty-api/internal/api/shared"
	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/query"
	"github.com/mintyhq/minty-api/internal/service"
)

// CatalogHandler serves the generic resource endpoints. Each handler method
// takes the kind its route is bound to and returns the http.HandlerFunc.
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}

	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "catalog_handler")),
	}
}

// List handles GET /{resource} requests.
func (h *CatalogHandler) List(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := requestFor(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		list, err := query.ParseListRequest(r.URL.Query())
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		result, err := h.catalog.List(r.Context(), req, list)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to list resources")
			return
		}

		resp := ListResponse{
			Count:   result.Total,
			Results: result.Items,
		}
		if result.HasNext {
			resp.Next = pageURL(r, result.Page+1)
		}
		if result.Page > 1 {
			resp.Previous = pageURL(r, result.Page-1)
		}

		logger.FromContextOrDefault(r.Context(), h.logger).Debug("listed resources",
			slog.String("kind", string(kind)),
			slog.Int("page", result.Page),
			slog.Int("results", len(result.Items)))
		shared.RespondWithJSON(w, r, http.StatusOK, resp)
	}
}

// Get handles GET /{resource}/{id} requests.
func (h *CatalogHandler) Get(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := entityRequest(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		obj, err := h.catalog.Retrieve(r.Context(), req)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to retrieve resource")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, obj)
	}
}

// Relation handles GET /{resource}/{id}/{relation} requests.
func (h *CatalogHandler) Relation(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := entityRequest(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		items, err := h.catalog.Relation(r.Context(), req, chi.URLParam(r, paramRelation))
		if err != nil {
			HandleAPIError(w, r, err, "Failed to retrieve related resources")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, items)
	}
}

// Create handles POST /{resource} requests.
func (h *CatalogHandler) Create(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := requestFor(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		body, err := shared.ReadBody(w, r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		obj, err := h.catalog.Create(r.Context(), req, body)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to create resource")
			return
		}

		logger.FromContextOrDefault(r.Context(), h.logger).Info("resource created",
			slog.String("kind", string(kind)),
			slog.Any("id", obj["id"]))
		shared.RespondWithJSON(w, r, http.StatusCreated, obj)
	}
}

// Update handles PATCH /{resource}/{id} requests. Only the fields present in
// the body are written.
func (h *CatalogHandler) Update(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := entityRequest(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		body, err := shared.ReadBody(w, r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		obj, err := h.catalog.Update(r.Context(), req, body)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to update resource")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, obj)
	}
}

// Delete handles DELETE /{resource}/{id} requests. The record is soft-deleted.
func (h *CatalogHandler) Delete(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := entityRequest(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		if err := h.catalog.Delete(r.Context(), req); err != nil {
			HandleAPIError(w, r, err, "Failed to delete resource")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Restore handles POST /{resource}/{id}/restore requests. Restoring an
// active record is not an error; it is returned unchanged.
func (h *CatalogHandler) Restore(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := entityRequest(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		obj, restored, err := h.catalog.Restore(r.Context(), req)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to restore resource")
			return
		}
		if !restored {
			logger.FromContextOrDefault(r.Context(), h.logger).Debug("restore of active resource",
				slog.String("kind", string(kind)),
				slog.String("id", req.ID.String()))
		}
		shared.RespondWithJSON(w, r, http.StatusOK, obj)
	}
}

// Purge handles DELETE /{resource}/{id}/purge requests. The record is removed
// permanently whether or not it was soft-deleted first.
func (h *CatalogHandler) Purge(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := entityRequest(r, kind)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		if err := h.catalog.Purge(r.Context(), req); err != nil {
			HandleAPIError(w, r, err, "Failed to purge resource")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
