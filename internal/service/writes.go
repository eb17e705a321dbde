package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/store"
)

// assignment applies one decoded write field to an entity and returns the
// column it changed. Reference values arrive resolved to a *int64 storage
// key, nil for a cleared relation.
type assignment func(e domain.Entity, v any) (column string, value any, err error)

var assignments = map[domain.Kind]map[string]assignment{
	domain.KindUser: {
		"username": func(e domain.Entity, v any) (string, any, error) {
			u := e.(*domain.User)
			u.Username = v.(string)
			return "username", u.Username, nil
		},
		"email": func(e domain.Entity, v any) (string, any, error) {
			u := e.(*domain.User)
			u.Email = v.(string)
			return "email", u.Email, nil
		},
		"password": func(e domain.Entity, v any) (string, any, error) {
			u := e.(*domain.User)
			if err := u.SetPassword(v.(string)); err != nil {
				return "", nil, err
			}
			return "password_hash", u.PasswordHash, nil
		},
		"guild": func(e domain.Entity, v any) (string, any, error) {
			u := e.(*domain.User)
			u.GuildID, u.Guild = v.(*int64), nil
			return "guild_id", u.GuildID, nil
		},
	},
	domain.KindGuild: {
		"name": func(e domain.Entity, v any) (string, any, error) {
			g := e.(*domain.Guild)
			g.Name = v.(string)
			return "name", g.Name, nil
		},
		"description": func(e domain.Entity, v any) (string, any, error) {
			g := e.(*domain.Guild)
			g.Description = v.(string)
			return "description", g.Description, nil
		},
		"owner": func(e domain.Entity, v any) (string, any, error) {
			g := e.(*domain.Guild)
			g.OwnerID, g.Owner = *v.(*int64), nil
			return "owner_id", g.OwnerID, nil
		},
	},
	domain.KindMarketplaceItem: {
		"name": func(e domain.Entity, v any) (string, any, error) {
			m := e.(*domain.MarketplaceItem)
			m.Name = v.(string)
			return "name", m.Name, nil
		},
		"description": func(e domain.Entity, v any) (string, any, error) {
			m := e.(*domain.MarketplaceItem)
			m.Description = v.(string)
			return "description", m.Description, nil
		},
		"price": func(e domain.Entity, v any) (string, any, error) {
			m := e.(*domain.MarketplaceItem)
			m.Price = v.(int64)
			return "price", m.Price, nil
		},
		"seller": func(e domain.Entity, v any) (string, any, error) {
			m := e.(*domain.MarketplaceItem)
			m.SellerID, m.Seller = *v.(*int64), nil
			return "seller_id", m.SellerID, nil
		},
	},
}

// applyWrite copies w onto e and returns the changed columns. References are
// resolved against active entities; a reference to a missing or deleted
// entity is a ValidationError on that field.
func applyWrite(ctx context.Context, records store.RecordStore, e domain.Entity, w render.Write) (map[string]any, error) {
	fields, err := render.WriteFields(w.Kind)
	if err != nil {
		return nil, err
	}
	set, ok := assignments[w.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", render.ErrReadOnlyKind, w.Kind)
	}

	columns := make(map[string]any, len(w.Values))
	for _, f := range fields {
		v, ok := w.Values[f.Name]
		if !ok {
			continue
		}
		if f.Type == render.Reference {
			v, err = resolveRef(ctx, records, f, v.(uuid.UUID))
			if err != nil {
				return nil, err
			}
		}
		column, value, err := set[f.Name](e, v)
		if err != nil {
			return nil, err
		}
		columns[column] = value
	}
	return columns, nil
}

func resolveRef(ctx context.Context, records store.RecordStore, f render.WriteField, id uuid.UUID) (*int64, error) {
	if id == uuid.Nil {
		if !f.Nullable {
			return nil, domain.NewValidationError(f.Name, "this field may not be null", nil)
		}
		return nil, nil
	}
	target, err := records.Resolve(ctx, f.Kind, id, store.ScopeActive, store.FetchPlan{})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewValidationError(f.Name,
				fmt.Sprintf("invalid id %q: object does not exist", id.String()), nil)
		}
		return nil, err
	}
	key := target.Base().ID
	return &key, nil
}
