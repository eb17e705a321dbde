package query

import (
	"github.com/mintyhq/minty-api/internal/store"
)

// Liveness references for edge rows. An edge whose endpoint is soft-deleted
// is dropped from traversals.
var (
	liveItem   = store.LiveRef{Column: "item_id", Table: "game_item"}
	liveMob    = store.LiveRef{Column: "mob_id", Table: "game_mob"}
	liveMap    = store.LiveRef{Column: "map_id", Table: "game_map"}
	liveNPC    = store.LiveRef{Column: "npc_id", Table: "game_npc"}
	liveRecipe = store.LiveRef{Column: "recipe_id", Table: "game_craftingrecipe"}
	liveQuest  = store.LiveRef{Column: "quest_id", Table: "game_quest"}
)

// Named fetch plans. Each one costs exactly Len() statements on top of the
// root query, however many roots there are.

// JobWithClass loads the job's class.
func JobWithClass() store.FetchPlan {
	return store.Plan("job_with_class", store.Load("MapleClass"))
}

// SkillWithJob loads the skill's job and that job's class.
func SkillWithJob() store.FetchPlan {
	return store.Plan("skill_with_job",
		store.Load("Job"),
		store.Load("Job.MapleClass"),
	)
}

// RegionWithContinent loads the region's continent.
func RegionWithContinent() store.FetchPlan {
	return store.Plan("region_with_continent", store.Load("Continent"))
}

// MapWithRegion loads the map's region.
func MapWithRegion() store.FetchPlan {
	return store.Plan("map_with_region", store.Load("Region"))
}

// QuestWithRequirements loads the starting NPC and every requirement.
func QuestWithRequirements() store.FetchPlan {
	return store.Plan("quest_with_requirements",
		store.Load("StartedBy"),
		store.Load("PrerequisiteQuest"),
		store.Load("RequiredClass"),
		store.Load("RequiredJob"),
	)
}

// QuestWithRewards loads the reward edges and their items.
func QuestWithRewards() store.FetchPlan {
	return store.Plan("quest_with_rewards",
		store.LoadLive("Rewards", liveItem),
		store.Load("Rewards.Item"),
	)
}

// RecipeWithResult loads the crafted item and the crafting NPC.
func RecipeWithResult() store.FetchPlan {
	return store.Plan("recipe_with_result",
		store.Load("ResultItem"),
		store.Load("CrafterNPC"),
	)
}

// RecipeWithIngredients loads the ingredient edges and their items.
func RecipeWithIngredients() store.FetchPlan {
	return store.Plan("recipe_with_ingredients",
		store.LoadLive("Ingredients", liveItem),
		store.Load("Ingredients.Item"),
	)
}

// MobWithDrops loads the drop edges and their items.
func MobWithDrops() store.FetchPlan {
	return store.Plan("mob_with_drops",
		store.LoadLive("Drops", liveItem),
		store.Load("Drops.Item"),
	)
}

// MobWithSpawns loads the spawn edges and the full location of each map.
func MobWithSpawns() store.FetchPlan {
	return store.Plan("mob_with_spawns",
		store.LoadLive("Spawns", liveMap),
		store.Load("Spawns.Map"),
		store.Load("Spawns.Map.Region"),
		store.Load("Spawns.Map.Region.Continent"),
	)
}

// ItemWithDrops loads the drop edges and the mobs dropping the item.
func ItemWithDrops() store.FetchPlan {
	return store.Plan("item_with_drops",
		store.LoadLive("Drops", liveMob),
		store.Load("Drops.Mob"),
	)
}

// NPCWithShop loads the shop listings and their items.
func NPCWithShop() store.FetchPlan {
	return store.Plan("npc_with_shop",
		store.LoadLive("ShopItems", liveItem),
		store.Load("ShopItems.Item"),
	)
}

// NPCWithLocations loads the location edges and their maps.
func NPCWithLocations() store.FetchPlan {
	return store.Plan("npc_with_locations",
		store.LoadLive("Locations", liveMap),
		store.Load("Locations.Map"),
	)
}

// UserWithGuild loads the user's guild.
func UserWithGuild() store.FetchPlan {
	return store.Plan("user_with_guild", store.Load("Guild"))
}

// GuildWithOwner loads the guild's owner.
func GuildWithOwner() store.FetchPlan {
	return store.Plan("guild_with_owner", store.Load("Owner"))
}

// MarketplaceWithSeller loads the listing's seller.
func MarketplaceWithSeller() store.FetchPlan {
	return store.Plan("marketplace_with_seller", store.Load("Seller"))
}

// NamedPlans returns every named plan, keyed by name.
func NamedPlans() map[string]store.FetchPlan {
	plans := []store.FetchPlan{
		JobWithClass(), SkillWithJob(), RegionWithContinent(), MapWithRegion(),
		QuestWithRequirements(), QuestWithRewards(),
		RecipeWithResult(), RecipeWithIngredients(),
		MobWithDrops(), MobWithSpawns(), ItemWithDrops(),
		NPCWithShop(), NPCWithLocations(),
		UserWithGuild(), GuildWithOwner(), MarketplaceWithSeller(),
	}
	out := make(map[string]store.FetchPlan, len(plans))
	for _, p := range plans {
		out[p.Name] = p
	}
	return out
}
