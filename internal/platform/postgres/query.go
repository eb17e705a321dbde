package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintyhq/minty-api/internal/store"
)

// ApplyScope restricts db to the records visible in scope. It is the only
// place scopes are translated into SQL.
func ApplyScope(db *gorm.DB, scope store.Scope) *gorm.DB {
	switch scope {
	case store.ScopeAll:
		return db.Unscoped()
	case store.ScopeDeleted:
		return db.Unscoped().Where("deleted_at IS NOT NULL")
	default:
		return db
	}
}

// ApplyPlan registers plan's preloads on db. Every preloaded relation is
// restricted to active rows, and edge rows additionally require their Live
// endpoints to be active. Missing path prefixes are added so that an
// intermediate relation is never loaded without the active restriction.
func ApplyPlan(db *gorm.DB, plan store.FetchPlan) *gorm.DB {
	seen := make(map[string]bool, plan.Len())
	for _, pl := range plan.Preloads {
		seen[pl.Path] = true
	}

	for _, pl := range plan.Preloads {
		parts := strings.Split(pl.Path, ".")
		for i := 1; i < len(parts); i++ {
			prefix := strings.Join(parts[:i], ".")
			if !seen[prefix] {
				seen[prefix] = true
				db = db.Preload(prefix, activeOnly(nil))
			}
		}
		db = db.Preload(pl.Path, activeOnly(pl.Live))
	}
	return db
}

func activeOnly(live []store.LiveRef) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return whereActive(tx, live)
	}
}

func whereActive(tx *gorm.DB, live []store.LiveRef) *gorm.DB {
	tx = tx.Where("deleted_at IS NULL")
	for _, ref := range live {
		tx = tx.Where(fmt.Sprintf("%s IN (SELECT id FROM %s WHERE deleted_at IS NULL)", ref.Column, ref.Table))
	}
	return tx
}

// applyFilters adds one equality condition per filter. Column and table
// names come from static shapes, never from callers.
func applyFilters(db *gorm.DB, filters []store.Filter) *gorm.DB {
	for _, f := range filters {
		if f.RefTable != "" {
			db = db.Where(fmt.Sprintf("%s IN (SELECT id FROM %s WHERE public_id = ?)", f.Column, f.RefTable), f.Value)
			continue
		}
		db = db.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applySearch matches term as a case-insensitive substring of any column.
func applySearch(db *gorm.DB, term string, columns []string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col)
		args[i] = pattern
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// applyOrder adds the ordering terms and the id tie-breaker that keeps
// pagination stable.
func applyOrder(db *gorm.DB, order []store.Order) *gorm.DB {
	for _, o := range order {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}
