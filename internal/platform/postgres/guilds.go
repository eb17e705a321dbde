package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/store"
)

// Guilds implements store.GuildStore. Every mutation locks the guild row
// first, so concurrent votes and tags on one guild are serialized, and
// appends a history row in the same transaction.
type Guilds struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

var _ store.GuildStore = (*Guilds)(nil)

// NewGuilds creates a Guilds store.
func NewGuilds(db *gorm.DB, log *slog.Logger) *Guilds {
	if log == nil {
		log = slog.Default()
	}
	return &Guilds{
		db:     db,
		logger: log.With("component", "guild_store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// lockGuild takes a row lock on an active guild. SQLite ignores the locking
// clause and serializes writers on its own.
func lockGuild(tx *gorm.DB, guildID int64) error {
	var g domain.Guild
	err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Where("id = ?", guildID).
		Take(&g).Error
	if err != nil {
		return store.NewStoreError("guild", "lock", "guild unavailable", MapError(err))
	}
	return nil
}

// SetFame implements store.GuildStore.
func (s *Guilds) SetFame(ctx context.Context, guildID, userID int64, value int) (*domain.GuildFame, error) {
	fame := &domain.GuildFame{GuildID: guildID, UserID: userID, Value: value}
	if err := domain.Validate(fame); err != nil {
		return nil, err
	}

	now := s.now()
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := lockGuild(tx, guildID); err != nil {
			return err
		}

		var existing domain.GuildFame
		err := tx.Unscoped().Where("guild_id = ? AND user_id = ?", guildID, userID).Take(&existing).Error
		switch {
		case err == nil:
			if existing.Active() && existing.Value == value {
				*fame = existing
				return nil
			}
			action := domain.HistoryChanged
			if !existing.Active() {
				action = domain.HistoryCreated
			}
			res := tx.Unscoped().Model(&existing).UpdateColumns(map[string]any{
				"value":      value,
				"deleted_at": nil,
				"updated_at": now,
			})
			if res.Error != nil {
				return MapError(res.Error)
			}
			existing.Value = value
			existing.MarkRestored(now)
			existing.UpdatedAt = now
			*fame = existing
			return recordFame(tx, guildID, userID, value, action, now)
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit(clause.Associations).Create(fame).Error; err != nil {
				return MapError(err)
			}
			return recordFame(tx, guildID, userID, value, domain.HistoryCreated, now)
		default:
			return MapError(err)
		}
	})
	if err != nil {
		return nil, store.NewStoreError("guild_fame", "set", "vote failed", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("fame recorded",
		slog.Int64("guild_id", guildID),
		slog.Int64("user_id", userID),
		slog.Int("value", value))
	return fame, nil
}

// RemoveFame implements store.GuildStore.
func (s *Guilds) RemoveFame(ctx context.Context, guildID, userID int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := lockGuild(tx, guildID); err != nil {
			return err
		}
		var existing domain.GuildFame
		err := tx.Unscoped().Where("guild_id = ? AND user_id = ?", guildID, userID).Take(&existing).Error
		if err != nil {
			return MapError(err)
		}
		res := tx.Unscoped().Delete(&existing)
		if res.Error != nil {
			return MapError(res.Error)
		}
		if err := CheckRowsAffected(res.RowsAffected, "guild_fame"); err != nil {
			return err
		}
		return recordFame(tx, guildID, userID, existing.Value, domain.HistoryRemoved, s.now())
	})
	if err != nil {
		return store.NewStoreError("guild_fame", "remove", "removing vote failed", err)
	}
	return nil
}

// FameTotals implements store.GuildStore.
func (s *Guilds) FameTotals(ctx context.Context, guildID int64) (domain.FameTotals, error) {
	var totals domain.FameTotals
	err := s.db.WithContext(ctx).
		Model(&domain.GuildFame{}).
		Select(fmt.Sprintf(
			"COALESCE(SUM(value), 0) AS total, "+
				"COALESCE(SUM(CASE WHEN value = %d THEN 1 ELSE 0 END), 0) AS fame, "+
				"COALESCE(SUM(CASE WHEN value = %d THEN 1 ELSE 0 END), 0) AS defame",
			domain.Fame, domain.Defame)).
		Where("guild_id = ?", guildID).
		Scan(&totals).Error
	if err != nil {
		return domain.FameTotals{}, store.NewStoreError("guild_fame", "totals", "aggregate failed", MapError(err))
	}
	return totals, nil
}

// AddTag implements store.GuildStore.
func (s *Guilds) AddTag(ctx context.Context, guildID, userID int64, value string) (*domain.GuildTag, bool, error) {
	tag := &domain.GuildTag{GuildID: guildID, UserID: userID, Value: value}
	if err := domain.Validate(tag); err != nil {
		return nil, false, err
	}

	var created bool
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := lockGuild(tx, guildID); err != nil {
			return err
		}

		var existing domain.GuildTag
		err := tx.Where("guild_id = ? AND user_id = ? AND value = ?", guildID, userID, value).Take(&existing).Error
		if err == nil {
			*tag = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return MapError(err)
		}

		var n int64
		if err := tx.Model(&domain.GuildTag{}).
			Where("guild_id = ? AND user_id = ?", guildID, userID).
			Count(&n).Error; err != nil {
			return MapError(err)
		}
		if n >= domain.MaxTagsPerUser {
			return store.NewStoreError("guild_tag", "add",
				fmt.Sprintf("a user may apply at most %d tags to a guild", domain.MaxTagsPerUser),
				store.ErrLimitExceeded)
		}

		if err := tx.Omit(clause.Associations).Create(tag).Error; err != nil {
			return MapError(err)
		}
		created = true
		return recordTag(tx, guildID, userID, value, domain.HistoryCreated, s.now())
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.FromContextOrDefault(ctx, s.logger).Debug("tag applied",
			slog.Int64("guild_id", guildID),
			slog.Int64("user_id", userID),
			slog.String("value", value))
	}
	return tag, created, nil
}

// RemoveTag implements store.GuildStore.
func (s *Guilds) RemoveTag(ctx context.Context, guildID, userID int64, value string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := lockGuild(tx, guildID); err != nil {
			return err
		}
		res := tx.Unscoped().
			Where("guild_id = ? AND user_id = ? AND value = ?", guildID, userID, value).
			Delete(&domain.GuildTag{})
		if res.Error != nil {
			return MapError(res.Error)
		}
		if err := CheckRowsAffected(res.RowsAffected, "guild_tag"); err != nil {
			return err
		}
		return recordTag(tx, guildID, userID, value, domain.HistoryRemoved, s.now())
	})
	if err != nil {
		return store.NewStoreError("guild_tag", "remove", "removing tag failed", err)
	}
	return nil
}

// TagCounts implements store.GuildStore.
func (s *Guilds) TagCounts(ctx context.Context, guildID int64) ([]domain.TagCount, error) {
	var counts []domain.TagCount
	err := s.db.WithContext(ctx).
		Model(&domain.GuildTag{}).
		Select("value, COUNT(*) AS count").
		Where("guild_id = ?", guildID).
		Group("value").
		Order("COUNT(*) DESC, value").
		Scan(&counts).Error
	if err != nil {
		return nil, store.NewStoreError("guild_tag", "counts", "aggregate failed", MapError(err))
	}
	return counts, nil
}

// UserTags implements store.GuildStore.
func (s *Guilds) UserTags(ctx context.Context, guildID, userID int64) ([]string, error) {
	values := []string{}
	err := s.db.WithContext(ctx).
		Model(&domain.GuildTag{}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("value").
		Pluck("value", &values).Error
	if err != nil {
		return nil, store.NewStoreError("guild_tag", "user_tags", "query failed", MapError(err))
	}
	return values, nil
}

// FameHistory implements store.GuildStore.
func (s *Guilds) FameHistory(ctx context.Context, guildID, userID int64) ([]domain.GuildFameHistory, error) {
	rows := []domain.GuildFameHistory{}
	if err := historyQuery(s.db.WithContext(ctx), guildID, userID).Find(&rows).Error; err != nil {
		return nil, store.NewStoreError("guild_fame", "history", "query failed", MapError(err))
	}
	return rows, nil
}

// TagHistory implements store.GuildStore.
func (s *Guilds) TagHistory(ctx context.Context, guildID, userID int64) ([]domain.GuildTagHistory, error) {
	rows := []domain.GuildTagHistory{}
	if err := historyQuery(s.db.WithContext(ctx), guildID, userID).Find(&rows).Error; err != nil {
		return nil, store.NewStoreError("guild_tag", "history", "query failed", MapError(err))
	}
	return rows, nil
}

// historyQuery selects a guild's history newest first. The user is loaded
// even when soft-deleted, since the rows outlive the user's visibility.
func historyQuery(db *gorm.DB, guildID, userID int64) *gorm.DB {
	q := db.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("guild_id = ?", guildID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	return q.Order("recorded_at DESC, id DESC")
}

func recordFame(tx *gorm.DB, guildID, userID int64, value int, action domain.HistoryAction, at time.Time) error {
	row := &domain.GuildFameHistory{GuildID: guildID, UserID: userID, Value: value, Action: action, RecordedAt: at}
	return MapError(tx.Omit(clause.Associations).Create(row).Error)
}

func recordTag(tx *gorm.DB, guildID, userID int64, value string, action domain.HistoryAction, at time.Time) error {
	row := &domain.GuildTagHistory{GuildID: guildID, UserID: userID, Value: value, Action: action, RecordedAt: at}
	return MapError(tx.Omit(clause.Associations).Create(row).Error)
}
