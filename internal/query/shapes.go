package query

import (
	"fmt"
	"sort"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/store"
)

// DefaultPageSize is the page size of every kind that does not set one.
const DefaultPageSize = 24

// FieldType says how a filter value is parsed.
type FieldType int

const (
	// FieldString compares the raw value.
	FieldString FieldType = iota
	// FieldInt parses the value as a base-10 integer.
	FieldInt
	// FieldRef parses the value as the public id of a row in RefTable.
	FieldRef
)

// FilterField is one equality filter a caller may apply.
type FilterField struct {
	Column   string
	Type     FieldType
	RefTable string
}

// Link is a relation that can be expanded: a forward reference, or the
// edge rows of a many-to-many relation when Live is set.
type Link struct {
	// Association is the relation's name on the domain struct.
	Association string
	Kind        domain.Kind
	Live        []store.LiveRef
}

func edges(association string, kind domain.Kind, live store.LiveRef) Link {
	return Link{Association: association, Kind: kind, Live: []store.LiveRef{live}}
}

// Shape is the list and traversal configuration of one kind.
type Shape struct {
	Kind         domain.Kind
	DefaultOrder []store.Order
	// OrderFields maps external field names to columns.
	OrderFields  map[string]string
	FilterFields map[string]FilterField
	SearchFields []string
	// Plan is loaded for every list and detail response.
	Plan     store.FetchPlan
	Links    map[string]Link
	PageSize int
	// Edge shapes are reachable only as nested collections.
	Edge bool
}

var (
	byName       = []store.Order{{Column: "name"}}
	newestFirst  = []store.Order{{Column: "created_at", Desc: true}}
	gameOrdering = map[string]string{"name": "name", "created_at": "created_at", "updated_at": "updated_at"}
	gameSearch   = []string{"name", "description"}
)

func withFields(base map[string]string, extra ...string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for _, f := range extra {
		out[f] = f
	}
	return out
}

func ref(column, table string) FilterField {
	return FilterField{Column: column, Type: FieldRef, RefTable: table}
}

func gameShape(kind domain.Kind, plan store.FetchPlan) Shape {
	return Shape{
		Kind:         kind,
		DefaultOrder: byName,
		OrderFields:  gameOrdering,
		FilterFields: map[string]FilterField{},
		SearchFields: gameSearch,
		Plan:         plan,
		Links:        map[string]Link{},
	}
}

// edgeShape loads both endpoints so an edge row renders its references
// wherever it appears.
func edgeShape(kind domain.Kind, order []store.Order, links map[string]Link) Shape {
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Association)
	}
	sort.Strings(names)
	preloads := make([]store.Preload, len(names))
	for i, name := range names {
		preloads[i] = store.Load(name)
	}
	return Shape{
		Kind:         kind,
		DefaultOrder: order,
		OrderFields:  map[string]string{"created_at": "created_at"},
		FilterFields: map[string]FilterField{},
		Plan:         store.Plan(string(kind)+"_endpoints", preloads...),
		Links:        links,
		Edge:         true,
	}
}

var shapes = buildShapes()

func buildShapes() map[domain.Kind]Shape {
	out := map[domain.Kind]Shape{}
	add := func(s Shape) {
		if s.PageSize == 0 {
			s.PageSize = DefaultPageSize
		}
		out[s.Kind] = s
	}

	add(gameShape(domain.KindClass, store.FetchPlan{}))

	job := gameShape(domain.KindJob, JobWithClass())
	job.FilterFields["maple_class"] = ref("maple_class_id", "game_mapleclass")
	job.Links["maple_class"] = Link{Association: "MapleClass", Kind: domain.KindClass}
	add(job)

	skill := gameShape(domain.KindSkill, SkillWithJob())
	skill.FilterFields["job"] = ref("job_id", "game_job")
	skill.Links["job"] = Link{Association: "Job", Kind: domain.KindJob}
	add(skill)

	add(gameShape(domain.KindContinent, store.FetchPlan{}))

	region := gameShape(domain.KindRegion, RegionWithContinent())
	region.FilterFields["continent"] = ref("continent_id", "game_continent")
	region.Links["continent"] = Link{Association: "Continent", Kind: domain.KindContinent}
	add(region)

	m := gameShape(domain.KindMap, MapWithRegion())
	m.FilterFields["region"] = ref("region_id", "game_region")
	m.Links["region"] = Link{Association: "Region", Kind: domain.KindRegion}
	add(m)

	item := gameShape(domain.KindItem, store.FetchPlan{})
	item.OrderFields = withFields(gameOrdering, "slot", "category")
	item.FilterFields["slot"] = FilterField{Column: "slot"}
	item.FilterFields["category"] = FilterField{Column: "category"}
	item.FilterFields["subcategory"] = FilterField{Column: "subcategory"}
	item.Links["drops"] = edges("Drops", domain.KindItemDrop, liveMob)
	add(item)

	mob := gameShape(domain.KindMob, store.FetchPlan{})
	mob.OrderFields = withFields(gameOrdering, "hp", "mp", "exp", "mesos")
	mob.Links["drops"] = edges("Drops", domain.KindItemDrop, liveItem)
	mob.Links["spawns"] = edges("Spawns", domain.KindMobSpawn, liveMap)
	add(mob)

	npc := gameShape(domain.KindNPC, store.FetchPlan{})
	npc.Links["shop_items"] = edges("ShopItems", domain.KindNPCShopItem, liveItem)
	npc.Links["locations"] = edges("Locations", domain.KindNPCLocation, liveMap)
	add(npc)

	quest := gameShape(domain.KindQuest, QuestWithRequirements())
	quest.OrderFields = withFields(gameOrdering, "quest_line", "required_level")
	quest.FilterFields["quest_line"] = FilterField{Column: "quest_line"}
	quest.FilterFields["required_level"] = FilterField{Column: "required_level", Type: FieldInt}
	quest.FilterFields["started_by"] = ref("started_by_id", "game_npc")
	quest.SearchFields = []string{"name", "description", "quest_line"}
	quest.Links["started_by"] = Link{Association: "StartedBy", Kind: domain.KindNPC}
	quest.Links["prerequisite_quest"] = Link{Association: "PrerequisiteQuest", Kind: domain.KindQuest}
	quest.Links["required_class"] = Link{Association: "RequiredClass", Kind: domain.KindClass}
	quest.Links["required_job"] = Link{Association: "RequiredJob", Kind: domain.KindJob}
	quest.Links["rewards"] = edges("Rewards", domain.KindQuestReward, liveItem)
	add(quest)

	recipe := gameShape(domain.KindRecipe, RecipeWithResult())
	recipe.FilterFields["result_item"] = ref("result_item_id", "game_item")
	recipe.FilterFields["crafter_npc"] = ref("crafter_npc_id", "game_npc")
	recipe.Links["result_item"] = Link{Association: "ResultItem", Kind: domain.KindItem}
	recipe.Links["crafter_npc"] = Link{Association: "CrafterNPC", Kind: domain.KindNPC}
	recipe.Links["ingredients"] = edges("Ingredients", domain.KindCraftingIngredient, liveItem)
	add(recipe)

	add(Shape{
		Kind:         domain.KindUser,
		DefaultOrder: newestFirst,
		OrderFields:  map[string]string{"username": "username", "created_at": "created_at"},
		FilterFields: map[string]FilterField{"guild": ref("guild_id", "hq_guild")},
		SearchFields: []string{"username"},
		Plan:         UserWithGuild(),
		Links:        map[string]Link{"guild": {Association: "Guild", Kind: domain.KindGuild}},
	})

	add(Shape{
		Kind:         domain.KindGuild,
		DefaultOrder: newestFirst,
		OrderFields:  map[string]string{"name": "name", "created_at": "created_at"},
		FilterFields: map[string]FilterField{"owner": ref("owner_id", "users")},
		SearchFields: []string{"name", "description"},
		Plan:         GuildWithOwner(),
		Links:        map[string]Link{"owner": {Association: "Owner", Kind: domain.KindUser}},
	})

	add(Shape{
		Kind:         domain.KindMarketplaceItem,
		DefaultOrder: newestFirst,
		OrderFields:  map[string]string{"name": "name", "price": "price", "created_at": "created_at"},
		FilterFields: map[string]FilterField{"seller": ref("seller_id", "users")},
		SearchFields: []string{"name", "description"},
		Plan:         MarketplaceWithSeller(),
		Links:        map[string]Link{"seller": {Association: "Seller", Kind: domain.KindUser}},
	})

	byRate := []store.Order{{Column: "drop_rate", Desc: true}}
	byID := []store.Order(nil)
	add(edgeShape(domain.KindItemDrop, byRate, map[string]Link{
		"item": {Association: "Item", Kind: domain.KindItem},
		"mob":  {Association: "Mob", Kind: domain.KindMob},
	}))
	add(edgeShape(domain.KindMobSpawn, byID, map[string]Link{
		"mob": {Association: "Mob", Kind: domain.KindMob},
		"map": {Association: "Map", Kind: domain.KindMap},
	}))
	add(edgeShape(domain.KindNPCLocation, byID, map[string]Link{
		"npc": {Association: "NPC", Kind: domain.KindNPC},
		"map": {Association: "Map", Kind: domain.KindMap},
	}))
	add(edgeShape(domain.KindNPCShopItem, []store.Order{{Column: "price"}}, map[string]Link{
		"npc":  {Association: "NPC", Kind: domain.KindNPC},
		"item": {Association: "Item", Kind: domain.KindItem},
	}))
	add(edgeShape(domain.KindQuestReward, []store.Order{{Column: "reward_group"}}, map[string]Link{
		"quest": {Association: "Quest", Kind: domain.KindQuest},
		"item":  {Association: "Item", Kind: domain.KindItem},
	}))
	add(edgeShape(domain.KindCraftingIngredient, byID, map[string]Link{
		"recipe": {Association: "Recipe", Kind: domain.KindRecipe},
		"item":   {Association: "Item", Kind: domain.KindItem},
	}))

	return out
}

// Lookup returns the shape of kind. Kinds without a shape, such as guild
// fame votes, cannot be listed.
func Lookup(kind domain.Kind) (Shape, error) {
	s, ok := shapes[kind]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %q has no query shape", domain.ErrUnknownKind, kind)
	}
	return s, nil
}

// Listable reports whether kind is exposed as a top-level collection.
func Listable(kind domain.Kind) bool {
	s, ok := shapes[kind]
	return ok && !s.Edge
}
