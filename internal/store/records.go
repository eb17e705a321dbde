package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/domain"
)

// RecordStore implements identity, visibility and lifecycle operations for
// every registered entity kind.
type RecordStore interface {
	// Resolve finds the entity of kind with publicID visible in scope and
	// loads plan's relations. A soft-deleted entity under ScopeActive is
	// reported exactly like a missing one: ErrNotFound.
	Resolve(ctx context.Context, kind domain.Kind, publicID uuid.UUID, scope Scope, plan FetchPlan) (domain.Entity, error)

	// List returns one page of entities of kind.
	List(ctx context.Context, kind domain.Kind, q ListQuery) (Page, error)

	// Children returns the active rows described by q.
	Children(ctx context.Context, q ChildQuery) ([]domain.Entity, error)

	// Create validates and inserts e. Unique violations are ErrDuplicate.
	Create(ctx context.Context, e domain.Entity) error

	// Update writes the given columns of e and refreshes updated_at.
	Update(ctx context.Context, e domain.Entity, columns map[string]any) error

	// SoftDelete stamps deleted_at. Deleting a deleted entity moves the stamp
	// forward.
	SoftDelete(ctx context.Context, e domain.Entity) error

	// Restore clears deleted_at and reports whether anything changed.
	Restore(ctx context.Context, e domain.Entity) (bool, error)

	// HardDelete removes the row. Dependents follow the schema's cascade and
	// set-null policies.
	HardDelete(ctx context.Context, e domain.Entity) error
}

// GraphStore creates the attributed edges between catalog entities. Every
// method validates the edge and reports a repeated pair as ErrDuplicate.
type GraphStore interface {
	AddDrop(ctx context.Context, item *domain.Item, mob *domain.Mob, dropRate float64) (*domain.ItemDrop, error)
	AddSpawn(ctx context.Context, mob *domain.Mob, m *domain.Map) (*domain.MobSpawn, error)
	AddLocation(ctx context.Context, npc *domain.NPC, m *domain.Map) (*domain.NPCLocation, error)
	AddShopItem(ctx context.Context, npc *domain.NPC, item *domain.Item, price int64) (*domain.NPCShopItem, error)
	AddReward(ctx context.Context, quest *domain.Quest, item *domain.Item, quantity, group int64) (*domain.QuestReward, error)
	AddIngredient(ctx context.Context, recipe *domain.CraftingRecipe, item *domain.Item, quantity int64) (*domain.CraftingIngredient, error)
}

// GuildStore holds the fame votes and tags users put on guilds. Every
// mutation is atomic per guild.
type GuildStore interface {
	// SetFame records or replaces the user's vote.
	SetFame(ctx context.Context, guildID, userID int64, value int) (*domain.GuildFame, error)
	// RemoveFame deletes the user's vote. Removing a missing vote is ErrNotFound.
	RemoveFame(ctx context.Context, guildID, userID int64) error
	FameTotals(ctx context.Context, guildID int64) (domain.FameTotals, error)

	// AddTag applies a tag. A repeated value returns the existing tag with
	// created false; a value beyond domain.MaxTagsPerUser is ErrLimitExceeded.
	AddTag(ctx context.Context, guildID, userID int64, value string) (tag *domain.GuildTag, created bool, err error)
	// RemoveTag deletes one tag. Removing a missing tag is ErrNotFound.
	RemoveTag(ctx context.Context, guildID, userID int64, value string) error
	// TagCounts returns each applied value with its count, most used first.
	TagCounts(ctx context.Context, guildID int64) ([]domain.TagCount, error)
	// UserTags returns the values the user applied, alphabetically.
	UserTags(ctx context.Context, guildID, userID int64) ([]string, error)

	// FameHistory and TagHistory return every recorded change newest first,
	// with the user preloaded. A zero userID selects all users.
	FameHistory(ctx context.Context, guildID, userID int64) ([]domain.GuildFameHistory, error)
	TagHistory(ctx context.Context, guildID, userID int64) ([]domain.GuildTagHistory, error)
}
