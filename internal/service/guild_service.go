package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/store"
)

// GuildService manages the fame votes and tags users put on guilds. Every
// mutation returns the guild's refreshed summary.
type GuildService interface {
	// Summary returns the fame totals and tag counts of an active guild.
	Summary(ctx context.Context, guildID uuid.UUID) (render.Object, error)

	// Vote records or replaces a user's fame vote, +1 or -1.
	Vote(ctx context.Context, guildID, userID uuid.UUID, value int) (render.Object, error)

	// Unvote withdraws a user's fame vote.
	Unvote(ctx context.Context, guildID, userID uuid.UUID) (render.Object, error)

	// AddTag applies a tag and reports whether it was new.
	AddTag(ctx context.Context, guildID, userID uuid.UUID, value string) (render.Object, bool, error)

	// RemoveTag withdraws one of a user's tags.
	RemoveTag(ctx context.Context, guildID, userID uuid.UUID, value string) (render.Object, error)

	// UserTags lists the tags a user applied to a guild.
	UserTags(ctx context.Context, guildID, userID uuid.UUID) ([]string, error)

	// FameHistory lists every recorded fame change on a guild, newest first.
	// uuid.Nil for userID lists all users.
	FameHistory(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error)

	// TagHistory is FameHistory for tags.
	TagHistory(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error)
}

type guildService struct {
	records store.RecordStore
	guilds  store.GuildStore
	logger  *slog.Logger
}

// NewGuildService creates a GuildService.
// It returns an error if any of the required dependencies are nil.
func NewGuildService(records store.RecordStore, guilds store.GuildStore, logger *slog.Logger) (GuildService, error) {
	if records == nil {
		return nil, &ServiceError{Service: "guild", Op: "create_service", Err: errors.New("records cannot be nil")}
	}
	if guilds == nil {
		return nil, &ServiceError{Service: "guild", Op: "create_service", Err: errors.New("guilds cannot be nil")}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &guildService{
		records: records,
		guilds:  guilds,
		logger:  logger.With("component", "guild_service"),
	}, nil
}

// actors resolves the guild and, when userID is set, the acting user. A
// missing guild is not found; a missing user is a validation error on the
// "user" field, since it arrives in the request body.
func (s *guildService) actors(ctx context.Context, guildID, userID uuid.UUID) (int64, int64, error) {
	g, err := s.records.Resolve(ctx, domain.KindGuild, guildID, store.ScopeActive, store.FetchPlan{})
	if err != nil {
		return 0, 0, err
	}
	if userID == uuid.Nil {
		return g.Base().ID, 0, nil
	}
	user, err := resolveRef(ctx, s.records, render.WriteField{Name: "user", Kind: domain.KindUser}, userID)
	if err != nil {
		return 0, 0, err
	}
	return g.Base().ID, *user, nil
}

func (s *guildService) summary(ctx context.Context, guildID uuid.UUID, key int64) (render.Object, error) {
	fame, err := s.guilds.FameTotals(ctx, key)
	if err != nil {
		return nil, err
	}
	tags, err := s.guilds.TagCounts(ctx, key)
	if err != nil {
		return nil, err
	}
	obj := render.GuildSummary(fame, tags)
	obj["guild"] = guildID.String()
	return obj, nil
}

// Summary implements GuildService.
func (s *guildService) Summary(ctx context.Context, guildID uuid.UUID) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "guild.Summary", domain.KindGuild)
	defer func() { endSpan(span, err) }()

	key, _, err := s.actors(ctx, guildID, uuid.Nil)
	if err != nil {
		return nil, NewServiceError("guild", "summary", err)
	}
	obj, err := s.summary(ctx, guildID, key)
	return obj, NewServiceError("guild", "summary", err)
}

// Vote implements GuildService.
func (s *guildService) Vote(ctx context.Context, guildID, userID uuid.UUID, value int) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "guild.Vote", domain.KindGuildFame)
	defer func() { endSpan(span, err) }()

	return s.mutate(ctx, span, "vote", guildID, userID, func(g, u int64) error {
		_, err := s.guilds.SetFame(ctx, g, u, value)
		return err
	})
}

// Unvote implements GuildService.
func (s *guildService) Unvote(ctx context.Context, guildID, userID uuid.UUID) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "guild.Unvote", domain.KindGuildFame)
	defer func() { endSpan(span, err) }()

	return s.mutate(ctx, span, "unvote", guildID, userID, func(g, u int64) error {
		return s.guilds.RemoveFame(ctx, g, u)
	})
}

// AddTag implements GuildService.
func (s *guildService) AddTag(ctx context.Context, guildID, userID uuid.UUID, value string) (_ render.Object, _ bool, err error) {
	ctx, span := startSpan(ctx, "guild.AddTag", domain.KindGuildTag)
	defer func() { endSpan(span, err) }()

	var created bool
	obj, err := s.mutate(ctx, span, "add_tag", guildID, userID, func(g, u int64) error {
		var err error
		_, created, err = s.guilds.AddTag(ctx, g, u, value)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return obj, created, nil
}

// RemoveTag implements GuildService.
func (s *guildService) RemoveTag(ctx context.Context, guildID, userID uuid.UUID, value string) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "guild.RemoveTag", domain.KindGuildTag)
	defer func() { endSpan(span, err) }()

	return s.mutate(ctx, span, "remove_tag", guildID, userID, func(g, u int64) error {
		return s.guilds.RemoveTag(ctx, g, u, value)
	})
}

// UserTags implements GuildService.
func (s *guildService) UserTags(ctx context.Context, guildID, userID uuid.UUID) (_ []string, err error) {
	ctx, span := startSpan(ctx, "guild.UserTags", domain.KindGuildTag)
	defer func() { endSpan(span, err) }()

	g, u, err := s.actors(ctx, guildID, userID)
	if err != nil {
		return nil, NewServiceError("guild", "user_tags", err)
	}
	tags, err := s.guilds.UserTags(ctx, g, u)
	if err != nil {
		return nil, NewServiceError("guild", "user_tags", err)
	}
	return tags, nil
}

// FameHistory implements GuildService.
func (s *guildService) FameHistory(ctx context.Context, guildID, userID uuid.UUID) (_ []render.Object, err error) {
	ctx, span := startSpan(ctx, "guild.FameHistory", domain.KindGuildFame)
	defer func() { endSpan(span, err) }()

	g, u, err := s.actors(ctx, guildID, userID)
	if err != nil {
		return nil, NewServiceError("guild", "fame_history", err)
	}
	rows, err := s.guilds.FameHistory(ctx, g, u)
	if err != nil {
		return nil, NewServiceError("guild", "fame_history", err)
	}
	return render.FameHistory(rows), nil
}

// TagHistory implements GuildService.
func (s *guildService) TagHistory(ctx context.Context, guildID, userID uuid.UUID) (_ []render.Object, err error) {
	ctx, span := startSpan(ctx, "guild.TagHistory", domain.KindGuildTag)
	defer func() { endSpan(span, err) }()

	g, u, err := s.actors(ctx, guildID, userID)
	if err != nil {
		return nil, NewServiceError("guild", "tag_history", err)
	}
	rows, err := s.guilds.TagHistory(ctx, g, u)
	if err != nil {
		return nil, NewServiceError("guild", "tag_history", err)
	}
	return render.TagHistory(rows), nil
}

func (s *guildService) mutate(
	ctx context.Context,
	span trace.Span,
	op string,
	guildID, userID uuid.UUID,
	fn func(guild, user int64) error,
) (render.Object, error) {
	g, u, err := s.actors(ctx, guildID, userID)
	if err != nil {
		return nil, NewServiceError("guild", op, err)
	}
	if err := fn(g, u); err != nil {
		return nil, NewServiceError("guild", op, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("guild opinion changed",
		slog.String("operation", op),
		slog.String("guild", guildID.String()),
		slog.String("user", userID.String()))
	span.AddEvent(op)

	obj, err := s.summary(ctx, guildID, g)
	if err != nil {
		return nil, NewServiceError("guild", op, err)
	}
	return obj, nil
}
