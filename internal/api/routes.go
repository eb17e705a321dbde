package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mintyhq/minty-api/internal/domain"
)

// Resource binds a URL path segment to the entity kind served under it.
type Resource struct {
	Path string
	Kind domain.Kind
}

// Resources lists every mounted resource in route order.
var Resources = []Resource{
	{Path: "/users", Kind: domain.KindUser},
	{Path: "/guilds", Kind: domain.KindGuild},
	{Path: "/mogul/items", Kind: domain.KindMarketplaceItem},
	{Path: "/db/classes", Kind: domain.KindClass},
	{Path: "/db/jobs", Kind: domain.KindJob},
	{Path: "/db/skills", Kind: domain.KindSkill},
	{Path: "/db/items", Kind: domain.KindItem},
	{Path: "/db/mobs", Kind: domain.KindMob},
	{Path: "/db/continents", Kind: domain.KindContinent},
	{Path: "/db/regions", Kind: domain.KindRegion},
	{Path: "/db/maps", Kind: domain.KindMap},
	{Path: "/db/npcs", Kind: domain.KindNPC},
	{Path: "/db/quests", Kind: domain.KindQuest},
	{Path: "/db/recipes", Kind: domain.KindRecipe},
}

// RegisterRoutes mounts the resource and guild endpoints on r. The caller
// is expected to mount r under a path carrying the {version} parameter.
func RegisterRoutes(r chi.Router, catalog *CatalogHandler, guilds *GuildHandler) {
	for _, res := range Resources {
		kind := res.Kind
		r.Route(res.Path, func(r chi.Router) {
			r.Get("/", catalog.List(kind))
			r.Post("/", catalog.Create(kind))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", catalog.Get(kind))
				r.Patch("/", catalog.Update(kind))
				r.Delete("/", catalog.Delete(kind))
				r.Post("/restore", catalog.Restore(kind))
				r.Delete("/purge", catalog.Purge(kind))

				if kind == domain.KindGuild {
					r.Get("/summary", guilds.Summary)
					r.Post("/fame", guilds.Vote)
					r.Delete("/fame/{user}", guilds.Unvote)
					r.Post("/tags", guilds.AddTag)
					r.Get("/tags/{user}", guilds.UserTags)
					r.Delete("/tags/{user}/{value}", guilds.RemoveTag)
					r.Get("/history/fame", guilds.FameHistory)
					r.Get("/history/tags", guilds.TagHistory)
				}

				r.Get("/{relation}", catalog.Relation(kind))
			})
		})
	}
}
