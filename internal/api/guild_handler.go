package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/api/shared"
	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/redact"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/service"
)

// GuildHandler serves guild fame and tag endpoints.
type GuildHandler struct {
	guilds service.GuildService
	logger *slog.Logger
}

// NewGuildHandler creates a new GuildHandler
func NewGuildHandler(guilds service.GuildService, logger *slog.Logger) *GuildHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GuildHandler")
	}

	return &GuildHandler{
		guilds: guilds,
		logger: logger.With(slog.String("component", "guild_handler")),
	}
}

// decodeAndValidate reads a JSON body into v and validates it. On failure it
// writes the error response and returns false.
func (h *GuildHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := shared.DecodeJSON(w, r, v); err != nil {
		log.Warn("invalid request format", redact.ErrorAttr(err))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// Summary handles GET /guilds/{id}/summary requests.
func (h *GuildHandler) Summary(w http.ResponseWriter, r *http.Request) {
	guildID, err := getPathUUID(r, paramID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summary, err := h.guilds.Summary(r.Context(), guildID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize guild")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Vote handles POST /guilds/{id}/fame requests. A second vote by the same
// user replaces the first.
func (h *GuildHandler) Vote(w http.ResponseWriter, r *http.Request) {
	guildID, err := getPathUUID(r, paramID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req FameRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	summary, err := h.guilds.Vote(r.Context(), guildID, uuid.MustParse(req.User), req.Value)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record fame")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Unvote handles DELETE /guilds/{id}/fame/{user} requests.
func (h *GuildHandler) Unvote(w http.ResponseWriter, r *http.Request) {
	guildID, userID, ok := h.guildAndUser(w, r)
	if !ok {
		return
	}

	summary, err := h.guilds.Unvote(r.Context(), guildID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove fame")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// AddTag handles POST /guilds/{id}/tags requests. A newly applied tag answers
// 201; repeating a tag the user already applied answers 200.
func (h *GuildHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	guildID, err := getPathUUID(r, paramID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req TagRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	summary, created, err := h.guilds.AddTag(r.Context(), guildID, uuid.MustParse(req.User), req.Value)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to tag guild")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	shared.RespondWithJSON(w, r, status, summary)
}

// RemoveTag handles DELETE /guilds/{id}/tags/{user}/{value} requests.
func (h *GuildHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	guildID, userID, ok := h.guildAndUser(w, r)
	if !ok {
		return
	}

	summary, err := h.guilds.RemoveTag(r.Context(), guildID, userID, chi.URLParam(r, paramValue))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove tag")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// UserTags handles GET /guilds/{id}/tags/{user} requests.
func (h *GuildHandler) UserTags(w http.ResponseWriter, r *http.Request) {
	guildID, userID, ok := h.guildAndUser(w, r)
	if !ok {
		return
	}

	tags, err := h.guilds.UserTags(r.Context(), guildID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TagsResponse{
		Guild: guildID.String(),
		User:  userID.String(),
		Tags:  tags,
	})
}

// FameHistory handles GET /guilds/{id}/history/fame requests. The optional
// user query parameter narrows the history to one user.
func (h *GuildHandler) FameHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, h.guilds.FameHistory)
}

// TagHistory handles GET /guilds/{id}/history/tags requests.
func (h *GuildHandler) TagHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, h.guilds.TagHistory)
}

func (h *GuildHandler) history(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error),
) {
	guildID, err := getPathUUID(r, paramID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	userID := uuid.Nil
	if raw := r.URL.Query().Get(paramUser); raw != "" {
		if userID, err = uuid.Parse(raw); err != nil {
			HandleAPIError(w, r, domain.NewValidationError(paramUser, "must be a valid id", domain.ErrInvalidID), "")
			return
		}
	}

	entries, err := fetch(r.Context(), guildID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load guild history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// guildAndUser extracts the {id} and {user} path parameters. It writes the
// not-found response if either is not an id.
func (h *GuildHandler) guildAndUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	guildID, err := getPathUUID(r, paramID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := getPathUUID(r, paramUser)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	return guildID, userID, true
}
