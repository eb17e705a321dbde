package render

import (
	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/domain"
)

// Object is one rendered entity.
type Object map[string]any

// Renderer renders one entity of a fixed kind.
type Renderer func(c *Context, e domain.Entity) Object

// Stats describes one render call.
type Stats struct {
	// CycleGuardTripped counts expansions refused because the entity was
	// already being rendered higher up the same path.
	CycleGuardTripped int
	// DepthCapped counts expansions refused at MaxExpandDepth.
	DepthCapped int
}

// Registry is the version dispatch table.
type Registry struct {
	renderers map[Version]map[domain.Kind]Renderer
}

// NewRegistry builds the dispatch table for every supported version.
func NewRegistry() *Registry {
	v1 := map[domain.Kind]Renderer{
		domain.KindClass:     renderClass,
		domain.KindJob:       renderJob,
		domain.KindSkill:     renderSkill,
		domain.KindContinent: renderContinent,
		domain.KindRegion:    renderRegion,
		domain.KindMap:       renderMap,
		domain.KindItem:      renderItem,
		domain.KindMob:       renderMob,
		domain.KindNPC:       renderNPC,
		domain.KindQuest:     renderQuest,
		domain.KindRecipe:    renderRecipe,

		domain.KindUser:            renderUser,
		domain.KindGuild:           renderGuild,
		domain.KindMarketplaceItem: renderListing,

		domain.KindItemDrop:           renderItemDrop,
		domain.KindMobSpawn:           renderMobSpawn,
		domain.KindNPCLocation:        renderNPCLocation,
		domain.KindNPCShopItem:        renderNPCShopItem,
		domain.KindQuestReward:        renderQuestReward,
		domain.KindCraftingIngredient: renderCraftingIngredient,
		domain.KindGuildTag:           renderGuildTag,
	}

	v2 := map[domain.Kind]Renderer{
		domain.KindMarketplaceItem: renderListingV2,
	}
	for _, kind := range catalogKinds {
		v2[kind] = withTimestamps(v1[kind])
	}

	return &Registry{renderers: map[Version]map[domain.Kind]Renderer{V1: v1, V2: v2}}
}

// Lookup returns the renderer of kind in version v. A kind that v does not
// override falls back to its V1 renderer.
func (r *Registry) Lookup(v Version, kind domain.Kind) (Renderer, bool) {
	if fn, ok := r.renderers[v][kind]; ok {
		return fn, true
	}
	fn, ok := r.renderers[V1][kind]
	return fn, ok
}

// Render renders e in version v, expanding the relations named by expand.
func (r *Registry) Render(v Version, e domain.Entity, expand Expand) (Object, Stats) {
	c := r.newContext(v, expand)
	return c.render(e, c.root(e)), *c.stats
}

// RenderList renders every entity with the same directive. Each entity
// starts its own path, so the cycle guard never crosses list items.
func (r *Registry) RenderList(v Version, items []domain.Entity, expand Expand) ([]Object, Stats) {
	c := r.newContext(v, expand)
	out := make([]Object, len(items))
	for i, e := range items {
		out[i] = c.render(e, c.root(e))
	}
	return out, *c.stats
}

func (r *Registry) newContext(v Version, expand Expand) *Context {
	if expand == nil {
		expand = Expand{}
	}
	return &Context{registry: r, version: v, expand: expand, stats: &Stats{}}
}

func (r *Registry) dispatch(c *Context, e domain.Entity) Object {
	fn, ok := r.Lookup(c.version, e.Kind())
	if !ok {
		return Object{"id": e.Base().PublicID}
	}
	return fn(c, e)
}

type pathKey struct {
	kind domain.Kind
	id   uuid.UUID
}

func keyOf(e domain.Entity) pathKey {
	return pathKey{kind: e.Kind(), id: e.Base().PublicID}
}
