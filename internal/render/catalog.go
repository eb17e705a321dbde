package render

import (
	"github.com/mintyhq/minty-api/internal/domain"
)

// catalogKinds are the game-reference kinds that embed domain.GameData.
var catalogKinds = []domain.Kind{
	domain.KindClass, domain.KindJob, domain.KindSkill,
	domain.KindContinent, domain.KindRegion, domain.KindMap,
	domain.KindItem, domain.KindMob, domain.KindNPC,
	domain.KindQuest, domain.KindRecipe,
}

func gameFields(g *domain.GameData) Object {
	return Object{
		"id":          g.PublicID,
		"name":        g.Name,
		"description": g.Description,
	}
}

func withTimestamps(fn Renderer) Renderer {
	return func(c *Context, e domain.Entity) Object {
		o := fn(c, e)
		base := e.Base()
		o["created_at"] = base.CreatedAt
		o["updated_at"] = base.UpdatedAt
		return o
	}
}

func renderClass(_ *Context, e domain.Entity) Object {
	return gameFields(&e.(*domain.MapleClass).GameData)
}

func renderJob(c *Context, e domain.Entity) Object {
	j := e.(*domain.Job)
	o := gameFields(&j.GameData)
	o["maple_class"] = Ref(c, "maple_class", j.MapleClass)
	return o
}

func renderSkill(c *Context, e domain.Entity) Object {
	s := e.(*domain.Skill)
	o := gameFields(&s.GameData)
	o["job"] = Ref(c, "job", s.Job)
	return o
}

func renderContinent(_ *Context, e domain.Entity) Object {
	return gameFields(&e.(*domain.Continent).GameData)
}

func renderRegion(c *Context, e domain.Entity) Object {
	r := e.(*domain.Region)
	o := gameFields(&r.GameData)
	o["continent"] = Ref(c, "continent", r.Continent)
	return o
}

func renderMap(c *Context, e domain.Entity) Object {
	m := e.(*domain.Map)
	o := gameFields(&m.GameData)
	o["region"] = Ref(c, "region", m.Region)
	return o
}

func renderItem(c *Context, e domain.Entity) Object {
	i := e.(*domain.Item)
	o := gameFields(&i.GameData)
	o["slot"] = i.Slot
	o["category"] = i.Category
	o["subcategory"] = i.Subcategory
	o["attributes"] = i.Attributes
	if c.Expanded("drops") {
		o["drops"] = Drops(c, i.Drops)
	}
	return o
}

func renderMob(c *Context, e domain.Entity) Object {
	m := e.(*domain.Mob)
	o := gameFields(&m.GameData)
	o["hp"] = m.HP
	o["mp"] = m.MP
	o["exp"] = m.EXP
	o["mesos"] = m.Mesos
	if c.Expanded("drops") {
		o["drops"] = Drops(c, m.Drops)
	}
	if c.Expanded("spawns") {
		o["spawns"] = Spawns(c, m.Spawns)
	}
	return o
}

func renderNPC(c *Context, e domain.Entity) Object {
	n := e.(*domain.NPC)
	o := gameFields(&n.GameData)
	if c.Expanded("shop_items") {
		o["shop_items"] = ShopItems(c, n.ShopItems)
	}
	if c.Expanded("locations") {
		o["locations"] = Locations(c, n.Locations)
	}
	return o
}

func renderQuest(c *Context, e domain.Entity) Object {
	q := e.(*domain.Quest)
	o := gameFields(&q.GameData)
	o["quest_line"] = q.QuestLine
	o["started_by"] = Ref(c, "started_by", q.StartedBy)
	o["meso_reward"] = q.MesoReward
	o["exp_reward"] = q.EXPReward
	o["prerequisite_quest"] = Ref(c, "prerequisite_quest", q.PrerequisiteQuest)
	o["required_level"] = q.RequiredLevel
	o["required_class"] = Ref(c, "required_class", q.RequiredClass)
	o["required_job"] = Ref(c, "required_job", q.RequiredJob)
	o["misc_requirements"] = q.MiscRequirements
	if c.Expanded("rewards") {
		o["rewards"] = Rewards(c, q.Rewards)
	}
	return o
}

func renderRecipe(c *Context, e domain.Entity) Object {
	r := e.(*domain.CraftingRecipe)
	o := gameFields(&r.GameData)
	o["result_item"] = Ref(c, "result_item", r.ResultItem)
	o["result_quantity"] = r.ResultQuantity
	o["meso_cost"] = r.MesoCost
	o["crafter_npc"] = Ref(c, "crafter_npc", r.CrafterNPC)
	if c.Expanded("ingredients") {
		o["ingredients"] = Ingredients(c, r.Ingredients)
	}
	return o
}
