package render

import (
	"time"

	"github.com/mintyhq/minty-api/internal/domain"
)

func renderUser(c *Context, e domain.Entity) Object {
	u := e.(*domain.User)
	return Object{
		"id":         u.PublicID,
		"username":   u.Username,
		"email":      u.Email,
		"guild":      Ref(c, "guild", u.Guild),
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func renderGuild(c *Context, e domain.Entity) Object {
	g := e.(*domain.Guild)
	return Object{
		"id":          g.PublicID,
		"name":        g.Name,
		"description": g.Description,
		"owner":       Ref(c, "owner", g.Owner),
		"created_at":  g.CreatedAt,
		"updated_at":  g.UpdatedAt,
	}
}

func renderListing(c *Context, e domain.Entity) Object {
	l := e.(*domain.MarketplaceItem)
	return Object{
		"id":          l.PublicID,
		"name":        l.Name,
		"description": l.Description,
		"price":       l.Price,
		"seller":      Ref(c, "seller", l.Seller),
		"created_at":  l.CreatedAt,
		"updated_at":  l.UpdatedAt,
	}
}

func renderListingV2(c *Context, e domain.Entity) Object {
	o := renderListing(c, e)
	o["seller_username"] = nil
	if seller := e.(*domain.MarketplaceItem).Seller; seller != nil {
		o["seller_username"] = seller.Username
	}
	return o
}

func renderGuildTag(_ *Context, e domain.Entity) Object {
	t := e.(*domain.GuildTag)
	return Object{
		"id":    t.PublicID,
		"value": t.Value,
	}
}

// GuildSummary renders the fame totals and tag counts of a guild.
func GuildSummary(fame domain.FameTotals, tags []domain.TagCount) Object {
	counts := make([]Object, len(tags))
	for i, t := range tags {
		counts[i] = Object{"value": t.Value, "count": t.Count}
	}
	return Object{
		"fame": Object{
			"total":  fame.Total,
			"fame":   fame.Fame,
			"defame": fame.Defame,
		},
		"tags": counts,
	}
}

// FameHistory renders recorded fame changes in the order given. The user is
// a public id reference, or null when it was not loaded.
func FameHistory(rows []domain.GuildFameHistory) []Object {
	out := make([]Object, len(rows))
	for i, h := range rows {
		out[i] = historyEntry(h.User, h.Value, h.Action, h.RecordedAt)
	}
	return out
}

// TagHistory renders recorded tag changes in the order given.
func TagHistory(rows []domain.GuildTagHistory) []Object {
	out := make([]Object, len(rows))
	for i, h := range rows {
		out[i] = historyEntry(h.User, h.Value, h.Action, h.RecordedAt)
	}
	return out
}

func historyEntry(u *domain.User, value any, action domain.HistoryAction, at time.Time) Object {
	var user any
	if u != nil {
		user = u.PublicID
	}
	return Object{
		"user":        user,
		"value":       value,
		"action":      string(action),
		"recorded_at": at,
	}
}
