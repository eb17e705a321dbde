package render

import (
	"github.com/mintyhq/minty-api/internal/domain"
)

// Drops renders drop edges with their rates.
func Drops(c *Context, rows []domain.ItemDrop) []Object {
	return collection(c, "drops", rows)
}

// Spawns renders spawn edges.
func Spawns(c *Context, rows []domain.MobSpawn) []Object {
	return collection(c, "spawns", rows)
}

// ShopItems renders shop listings with their prices.
func ShopItems(c *Context, rows []domain.NPCShopItem) []Object {
	return collection(c, "shop_items", rows)
}

// Locations renders NPC location edges.
func Locations(c *Context, rows []domain.NPCLocation) []Object {
	return collection(c, "locations", rows)
}

// Rewards renders a quest's rewards split into the guaranteed set and the
// choice pools, each ordered by item name.
func Rewards(c *Context, rows []domain.QuestReward) Object {
	set := domain.GroupRewards(rows)
	choices := make([]Object, len(set.Choices))
	for i, pool := range set.Choices {
		choices[i] = Object{
			"reward_group": pool.Group,
			"rewards":      collection(c, "rewards", pool.Rewards),
		}
	}
	return Object{
		"guaranteed": collection(c, "rewards", set.Guaranteed),
		"choices":    choices,
	}
}

// Ingredients renders a recipe's ingredients ordered by item name.
func Ingredients(c *Context, rows []domain.CraftingIngredient) []Object {
	sorted := make([]domain.CraftingIngredient, len(rows))
	copy(sorted, rows)
	domain.SortIngredients(sorted)
	return collection(c, "ingredients", sorted)
}

func renderItemDrop(c *Context, e domain.Entity) Object {
	d := e.(*domain.ItemDrop)
	return Object{
		"id":        d.PublicID,
		"item":      Ref(c, "item", d.Item),
		"mob":       Ref(c, "mob", d.Mob),
		"drop_rate": d.DropRate,
	}
}

func renderMobSpawn(c *Context, e domain.Entity) Object {
	s := e.(*domain.MobSpawn)
	return Object{
		"id":  s.PublicID,
		"mob": Ref(c, "mob", s.Mob),
		"map": Ref(c, "map", s.Map),
	}
}

func renderNPCLocation(c *Context, e domain.Entity) Object {
	l := e.(*domain.NPCLocation)
	return Object{
		"id":  l.PublicID,
		"npc": Ref(c, "npc", l.NPC),
		"map": Ref(c, "map", l.Map),
	}
}

func renderNPCShopItem(c *Context, e domain.Entity) Object {
	s := e.(*domain.NPCShopItem)
	return Object{
		"id":    s.PublicID,
		"npc":   Ref(c, "npc", s.NPC),
		"item":  Ref(c, "item", s.Item),
		"price": s.Price,
	}
}

func renderQuestReward(c *Context, e domain.Entity) Object {
	r := e.(*domain.QuestReward)
	return Object{
		"id":           r.PublicID,
		"quest":        Ref(c, "quest", r.Quest),
		"item":         Ref(c, "item", r.Item),
		"quantity":     r.Quantity,
		"reward_group": r.RewardGroup,
	}
}

func renderCraftingIngredient(c *Context, e domain.Entity) Object {
	i := e.(*domain.CraftingIngredient)
	return Object{
		"id":       i.PublicID,
		"recipe":   Ref(c, "recipe", i.Recipe),
		"item":     Ref(c, "item", i.Item),
		"quantity": i.Quantity,
	}
}
