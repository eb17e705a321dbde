package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/store"
)

// Records implements store.RecordStore for every registered kind.
type Records struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

var _ store.RecordStore = (*Records)(nil)

// RecordsOption configures Records.
type RecordsOption func(*Records)

// WithClock replaces the clock used for lifecycle timestamps.
func WithClock(now func() time.Time) RecordsOption {
	return func(r *Records) { r.now = now }
}

// NewRecords creates a Records store.
func NewRecords(db *gorm.DB, log *slog.Logger, opts ...RecordsOption) *Records {
	if log == nil {
		log = slog.Default()
	}
	r := &Records{
		db:     db,
		logger: log.With("component", "record_store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements store.RecordStore.
func (r *Records) Resolve(
	ctx context.Context,
	kind domain.Kind,
	publicID uuid.UUID,
	scope store.Scope,
	plan store.FetchPlan,
) (domain.Entity, error) {
	d, err := domain.Lookup(kind)
	if err != nil {
		return nil, err
	}

	e := d.New()
	q := ApplyPlan(ApplyScope(r.db.WithContext(ctx), scope), plan)
	if err := q.Where("public_id = ?", publicID).Take(e).Error; err != nil {
		return nil, store.NewStoreError(string(kind), "resolve", "lookup by public id failed", MapError(err))
	}
	return e, nil
}

// List implements store.RecordStore.
func (r *Records) List(ctx context.Context, kind domain.Kind, q store.ListQuery) (store.Page, error) {
	d, err := domain.Lookup(kind)
	if err != nil {
		return store.Page{}, err
	}

	base := ApplyScope(r.db.WithContext(ctx).Model(d.New()), q.Scope)
	base = applyFilters(base, q.Filters)
	base = applySearch(base, q.Search, q.SearchColumns)
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return store.Page{}, store.NewStoreError(string(kind), "list", "count failed", MapError(err))
	}

	find := applyOrder(base, q.Order)
	if q.PageSize > 0 {
		find = find.Limit(q.PageSize).Offset(q.Offset())
	}
	find = ApplyPlan(find, q.Plan)

	list := d.NewList()
	if err := find.Find(list).Error; err != nil {
		return store.Page{}, store.NewStoreError(string(kind), "list", "query failed", MapError(err))
	}

	return store.Page{
		Items:    d.Entities(list),
		Page:     max(q.Page, 1),
		PageSize: q.PageSize,
		Total:    total,
	}, nil
}

// Children implements store.RecordStore.
func (r *Records) Children(ctx context.Context, q store.ChildQuery) ([]domain.Entity, error) {
	d, err := domain.Lookup(q.Kind)
	if err != nil {
		return nil, err
	}

	db := whereActive(r.db.WithContext(ctx), q.Live).
		Where(clause.Eq{Column: clause.Column{Name: q.ForeignKey}, Value: q.ParentID})
	db = ApplyPlan(applyOrder(db, q.Order), q.Plan)

	list := d.NewList()
	if err := db.Find(list).Error; err != nil {
		return nil, store.NewStoreError(string(q.Kind), "children", "query failed", MapError(err))
	}
	return d.Entities(list), nil
}

// Create implements store.RecordStore.
func (r *Records) Create(ctx context.Context, e domain.Entity) error {
	if err := domain.Validate(e); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		return store.NewStoreError(string(e.Kind()), "create", "insert failed", MapError(err))
	}
	logger.FromContextOrDefault(ctx, r.logger).Debug("entity created",
		slog.String("kind", string(e.Kind())),
		slog.String("public_id", e.Base().PublicID.String()))
	return nil
}

// Update implements store.RecordStore. Only active entities can be updated.
func (r *Records) Update(ctx context.Context, e domain.Entity, columns map[string]any) error {
	if err := domain.Validate(e); err != nil {
		return err
	}
	if len(columns) == 0 {
		return nil
	}

	now := r.now()
	values := make(map[string]any, len(columns)+1)
	for k, v := range columns {
		values[k] = v
	}
	values["updated_at"] = now

	res := r.db.WithContext(ctx).Model(e).Omit(clause.Associations).UpdateColumns(values)
	if res.Error != nil {
		return store.NewStoreError(string(e.Kind()), "update", "update failed", MapError(res.Error))
	}
	if err := CheckRowsAffected(res.RowsAffected, string(e.Kind())); err != nil {
		return err
	}
	e.Base().UpdatedAt = now
	return nil
}

// SoftDelete implements store.RecordStore.
func (r *Records) SoftDelete(ctx context.Context, e domain.Entity) error {
	now := r.now()
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		res := tx.Unscoped().Model(e).UpdateColumns(map[string]any{
			"deleted_at": now,
			"updated_at": now,
		})
		if res.Error != nil {
			return MapError(res.Error)
		}
		return CheckRowsAffected(res.RowsAffected, string(e.Kind()))
	})
	if err != nil {
		return store.NewStoreError(string(e.Kind()), "delete", "soft delete failed", err)
	}

	e.Base().MarkDeleted(now)
	logger.FromContextOrDefault(ctx, r.logger).Info("entity soft-deleted",
		slog.String("kind", string(e.Kind())),
		slog.String("public_id", e.Base().PublicID.String()))
	return nil
}

// Restore implements store.RecordStore. Restoring an active entity writes
// nothing and reports false.
func (r *Records) Restore(ctx context.Context, e domain.Entity) (bool, error) {
	if e.Base().Active() {
		return false, nil
	}

	now := r.now()
	var restored bool
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		res := tx.Unscoped().Model(e).Where("deleted_at IS NOT NULL").UpdateColumns(map[string]any{
			"deleted_at": nil,
			"updated_at": now,
		})
		if res.Error != nil {
			return MapError(res.Error)
		}
		restored = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, store.NewStoreError(string(e.Kind()), "restore", "restore failed", err)
	}
	if !restored {
		// a concurrent restore won; the row is active either way
		e.Base().DeletedAt = gorm.DeletedAt{}
		return false, nil
	}

	e.Base().MarkRestored(now)
	logger.FromContextOrDefault(ctx, r.logger).Info("entity restored",
		slog.String("kind", string(e.Kind())),
		slog.String("public_id", e.Base().PublicID.String()))
	return true, nil
}

// HardDelete implements store.RecordStore.
func (r *Records) HardDelete(ctx context.Context, e domain.Entity) error {
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *gorm.DB) error {
		res := tx.Unscoped().Delete(e)
		if res.Error != nil {
			return MapError(res.Error)
		}
		return CheckRowsAffected(res.RowsAffected, string(e.Kind()))
	})
	if err != nil {
		return store.NewStoreError(string(e.Kind()), "purge", "hard delete failed", err)
	}

	logger.FromContextOrDefault(ctx, r.logger).Warn("entity purged",
		slog.String("kind", string(e.Kind())),
		slog.String("public_id", e.Base().PublicID.String()))
	return nil
}
