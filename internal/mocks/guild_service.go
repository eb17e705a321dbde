package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/service"
)

// MockGuildService implements service.GuildService for testing
type MockGuildService struct {
	SummaryFn   func(ctx context.Context, guildID uuid.UUID) (render.Object, error)
	VoteFn      func(ctx context.Context, guildID, userID uuid.UUID, value int) (render.Object, error)
	UnvoteFn    func(ctx context.Context, guildID, userID uuid.UUID) (render.Object, error)
	AddTagFn    func(ctx context.Context, guildID, userID uuid.UUID, value string) (render.Object, bool, error)
	RemoveTagFn func(ctx context.Context, guildID, userID uuid.UUID, value string) (render.Object, error)
	UserTagsFn  func(ctx context.Context, guildID, userID uuid.UUID) ([]string, error)

	FameHistoryFn func(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error)
	TagHistoryFn  func(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error)

	Object       render.Object
	Tags         []string
	History      []render.Object
	DefaultError error
}

var _ service.GuildService = (*MockGuildService)(nil)

// Summary implements the GuildService.Summary method
func (m *MockGuildService) Summary(ctx context.Context, guildID uuid.UUID) (render.Object, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, guildID)
	}
	return m.Object, m.DefaultError
}

// Vote implements the GuildService.Vote method
func (m *MockGuildService) Vote(ctx context.Context, guildID, userID uuid.UUID, value int) (render.Object, error) {
	if m.VoteFn != nil {
		return m.VoteFn(ctx, guildID, userID, value)
	}
	return m.Object, m.DefaultError
}

// Unvote implements the GuildService.Unvote method
func (m *MockGuildService) Unvote(ctx context.Context, guildID, userID uuid.UUID) (render.Object, error) {
	if m.UnvoteFn != nil {
		return m.UnvoteFn(ctx, guildID, userID)
	}
	return m.Object, m.DefaultError
}

// AddTag implements the GuildService.AddTag method
func (m *MockGuildService) AddTag(ctx context.Context, guildID, userID uuid.UUID, value string) (render.Object, bool, error) {
	if m.AddTagFn != nil {
		return m.AddTagFn(ctx, guildID, userID, value)
	}
	return m.Object, m.DefaultError == nil, m.DefaultError
}

// RemoveTag implements the GuildService.RemoveTag method
func (m *MockGuildService) RemoveTag(ctx context.Context, guildID, userID uuid.UUID, value string) (render.Object, error) {
	if m.RemoveTagFn != nil {
		return m.RemoveTagFn(ctx, guildID, userID, value)
	}
	return m.Object, m.DefaultError
}

// UserTags implements the GuildService.UserTags method
func (m *MockGuildService) UserTags(ctx context.Context, guildID, userID uuid.UUID) ([]string, error) {
	if m.UserTagsFn != nil {
		return m.UserTagsFn(ctx, guildID, userID)
	}
	return m.Tags, m.DefaultError
}

// FameHistory implements the GuildService.FameHistory method
func (m *MockGuildService) FameHistory(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error) {
	if m.FameHistoryFn != nil {
		return m.FameHistoryFn(ctx, guildID, userID)
	}
	return m.History, m.DefaultError
}

// TagHistory implements the GuildService.TagHistory method
func (m *MockGuildService) TagHistory(ctx context.Context, guildID, userID uuid.UUID) ([]render.Object, error) {
	if m.TagHistoryFn != nil {
		return m.TagHistoryFn(ctx, guildID, userID)
	}
	return m.History, m.DefaultError
}
