package query

import (
	"fmt"
	"sort"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/store"
)

// Collection is a nested collection reachable from an entity: a reverse
// relation or the edges of a many-to-many relation.
type Collection struct {
	Name       string
	Kind       domain.Kind
	ForeignKey string
	Live       []store.LiveRef
	Order      []store.Order
	Plan       store.FetchPlan
	// Sort reorders loaded rows when the order depends on a related row.
	Sort func([]domain.Entity)
}

// Query returns the child query loading the collection of parentID.
func (c Collection) Query(parentID int64) store.ChildQuery {
	return store.ChildQuery{
		Kind:       c.Kind,
		ForeignKey: c.ForeignKey,
		ParentID:   parentID,
		Live:       c.Live,
		Order:      c.Order,
		Plan:       c.Plan,
	}
}

var collections = map[domain.Kind]map[string]Collection{
	domain.KindClass: {
		"jobs": {Kind: domain.KindJob, ForeignKey: "maple_class_id", Order: byName, Plan: JobWithClass()},
	},
	domain.KindJob: {
		"skills": {Kind: domain.KindSkill, ForeignKey: "job_id", Order: byName, Plan: SkillWithJob()},
	},
	domain.KindContinent: {
		"regions": {Kind: domain.KindRegion, ForeignKey: "continent_id", Order: byName, Plan: RegionWithContinent()},
	},
	domain.KindRegion: {
		"maps": {Kind: domain.KindMap, ForeignKey: "region_id", Order: byName, Plan: MapWithRegion()},
	},
	domain.KindMap: {
		"mobs": {
			Kind: domain.KindMobSpawn, ForeignKey: "map_id", Live: []store.LiveRef{liveMob},
			Plan: store.Plan("spawns_for_map", store.Load("Mob"), store.Load("Map")),
		},
		"npcs": {
			Kind: domain.KindNPCLocation, ForeignKey: "map_id", Live: []store.LiveRef{liveNPC},
			Plan: store.Plan("locations_for_map", store.Load("NPC"), store.Load("Map")),
		},
	},
	domain.KindMob: {
		"drops": {
			Kind: domain.KindItemDrop, ForeignKey: "mob_id", Live: []store.LiveRef{liveItem},
			Order: []store.Order{{Column: "drop_rate", Desc: true}},
			Plan:  store.Plan("drops_for_mob", store.Load("Item"), store.Load("Mob")),
		},
		"spawns": {
			Kind: domain.KindMobSpawn, ForeignKey: "mob_id", Live: []store.LiveRef{liveMap},
			Plan: store.Plan("spawns_for_mob",
				store.Load("Mob"),
				store.Load("Map"),
				store.Load("Map.Region"),
				store.Load("Map.Region.Continent"),
			),
		},
	},
	domain.KindItem: {
		"drops": {
			Kind: domain.KindItemDrop, ForeignKey: "item_id", Live: []store.LiveRef{liveMob},
			Order: []store.Order{{Column: "drop_rate", Desc: true}},
			Plan:  store.Plan("drops_for_item", store.Load("Item"), store.Load("Mob")),
		},
		"sold_by": {
			Kind: domain.KindNPCShopItem, ForeignKey: "item_id", Live: []store.LiveRef{liveNPC},
			Order: []store.Order{{Column: "price"}},
			Plan:  store.Plan("shops_for_item", store.Load("NPC"), store.Load("Item")),
		},
		"rewarded_by": {
			Kind: domain.KindQuestReward, ForeignKey: "item_id", Live: []store.LiveRef{liveQuest},
			Plan: store.Plan("rewards_for_item", store.Load("Quest"), store.Load("Item")),
		},
		"used_in": {
			Kind: domain.KindCraftingIngredient, ForeignKey: "item_id", Live: []store.LiveRef{liveRecipe},
			Plan: store.Plan("ingredients_for_item", store.Load("Recipe"), store.Load("Item")),
		},
	},
	domain.KindNPC: {
		"shop_items": {
			Kind: domain.KindNPCShopItem, ForeignKey: "npc_id", Live: []store.LiveRef{liveItem},
			Order: []store.Order{{Column: "price"}},
			Plan:  store.Plan("shop_for_npc", store.Load("NPC"), store.Load("Item")),
		},
		"locations": {
			Kind: domain.KindNPCLocation, ForeignKey: "npc_id", Live: []store.LiveRef{liveMap},
			Plan: store.Plan("locations_for_npc", store.Load("NPC"), store.Load("Map"), store.Load("Map.Region")),
		},
	},
	domain.KindQuest: {
		"rewards": {
			Kind: domain.KindQuestReward, ForeignKey: "quest_id", Live: []store.LiveRef{liveItem},
			Order: []store.Order{{Column: "reward_group"}},
			Plan:  store.Plan("rewards_for_quest", store.Load("Quest"), store.Load("Item")),
			Sort:  sortRewards,
		},
	},
	domain.KindRecipe: {
		"ingredients": {
			Kind: domain.KindCraftingIngredient, ForeignKey: "recipe_id", Live: []store.LiveRef{liveItem},
			Plan: store.Plan("ingredients_for_recipe", store.Load("Recipe"), store.Load("Item")),
			Sort: sortIngredients,
		},
	},
	domain.KindGuild: {
		"members": {
			Kind: domain.KindUser, ForeignKey: "guild_id",
			Order: []store.Order{{Column: "username"}},
			Plan:  UserWithGuild(),
		},
	},
	domain.KindUser: {
		"listings": {Kind: domain.KindMarketplaceItem, ForeignKey: "seller_id", Order: newestFirst, Plan: MarketplaceWithSeller()},
	},
}

// CollectionFor returns the named collection of parent.
func CollectionFor(parent domain.Kind, name string) (Collection, error) {
	c, ok := collections[parent][name]
	if !ok {
		return Collection{}, store.NewStoreError(string(parent), "relation",
			fmt.Sprintf("%q has no collection %q", parent, name), store.ErrNotFound)
	}
	c.Name = name
	return c, nil
}

// Collections returns the collection names of parent, sorted.
func Collections(parent domain.Kind) []string {
	out := make([]string, 0, len(collections[parent]))
	for name := range collections[parent] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sortRewards(rows []domain.Entity) {
	rewards := make([]domain.QuestReward, len(rows))
	for i, e := range rows {
		rewards[i] = *e.(*domain.QuestReward)
	}
	domain.SortRewards(rewards)
	for i := range rewards {
		rows[i] = &rewards[i]
	}
}

func sortIngredients(rows []domain.Entity) {
	ingredients := make([]domain.CraftingIngredient, len(rows))
	for i, e := range rows {
		ingredients[i] = *e.(*domain.CraftingIngredient)
	}
	domain.SortIngredients(ingredients)
	for i := range ingredients {
		rows[i] = &ingredients[i]
	}
}
