package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintyhq/minty-api/internal/domain"
)

// Fixtures inserts entities for tests. Every constructor links the loaded
// relation pointers so the returned values can be rendered directly.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

// NewFixtures returns a builder writing to db.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

// Insert writes e without touching its associations.
func (f *Fixtures) Insert(e domain.Entity) {
	f.t.Helper()
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(e).Error, "insert %s", e.Kind())
}

// SoftDelete hides e from the default scope.
func (f *Fixtures) SoftDelete(e domain.Entity) {
	f.t.Helper()
	require.NoError(f.t, f.db.Delete(e).Error, "soft delete %s", e.Kind())
}

func gameData(name string) domain.GameData {
	return domain.GameData{Name: name}
}

func (f *Fixtures) Class(name string) *domain.MapleClass {
	f.t.Helper()
	c := &domain.MapleClass{GameData: gameData(name)}
	f.Insert(c)
	return c
}

func (f *Fixtures) Job(class *domain.MapleClass, name string) *domain.Job {
	f.t.Helper()
	j := &domain.Job{GameData: gameData(name), MapleClassID: class.ID, MapleClass: class}
	f.Insert(j)
	return j
}

func (f *Fixtures) Skill(job *domain.Job, name string) *domain.Skill {
	f.t.Helper()
	s := &domain.Skill{GameData: gameData(name), JobID: job.ID, Job: job}
	f.Insert(s)
	return s
}

func (f *Fixtures) Continent(name string) *domain.Continent {
	f.t.Helper()
	c := &domain.Continent{GameData: gameData(name)}
	f.Insert(c)
	return c
}

func (f *Fixtures) Region(continent *domain.Continent, name string) *domain.Region {
	f.t.Helper()
	r := &domain.Region{GameData: gameData(name), ContinentID: continent.ID, Continent: continent}
	f.Insert(r)
	return r
}

func (f *Fixtures) Map(region *domain.Region, name string) *domain.Map {
	f.t.Helper()
	m := &domain.Map{GameData: gameData(name), RegionID: region.ID, Region: region}
	f.Insert(m)
	return m
}

func (f *Fixtures) Item(name string) *domain.Item {
	f.t.Helper()
	i := &domain.Item{GameData: gameData(name), Slot: domain.SlotEtc, Category: domain.CategoryMisc}
	f.Insert(i)
	return i
}

func (f *Fixtures) Mob(name string, hp int64) *domain.Mob {
	f.t.Helper()
	m := &domain.Mob{GameData: gameData(name), HP: hp, EXP: hp / 10}
	f.Insert(m)
	return m
}

func (f *Fixtures) NPC(name string) *domain.NPC {
	f.t.Helper()
	n := &domain.NPC{GameData: gameData(name)}
	f.Insert(n)
	return n
}

func (f *Fixtures) Quest(startedBy *domain.NPC, name string) *domain.Quest {
	f.t.Helper()
	q := &domain.Quest{GameData: gameData(name), StartedByID: startedBy.ID, StartedBy: startedBy}
	f.Insert(q)
	return q
}

func (f *Fixtures) Recipe(result *domain.Item, name string) *domain.CraftingRecipe {
	f.t.Helper()
	r := &domain.CraftingRecipe{GameData: gameData(name), ResultItemID: result.ID, ResultItem: result, ResultQuantity: 1}
	f.Insert(r)
	return r
}

func (f *Fixtures) User(username string) *domain.User {
	f.t.Helper()
	u := &domain.User{Username: username, PasswordHash: "unusable"}
	f.Insert(u)
	return u
}

func (f *Fixtures) Guild(owner *domain.User, name string) *domain.Guild {
	f.t.Helper()
	g := &domain.Guild{Name: name, OwnerID: owner.ID, Owner: owner}
	f.Insert(g)
	return g
}

// Join makes u a member of g.
func (f *Fixtures) Join(u *domain.User, g *domain.Guild) {
	f.t.Helper()
	require.NoError(f.t, f.db.Model(u).Update("guild_id", g.ID).Error)
	u.GuildID = &g.ID
	u.Guild = g
}

func (f *Fixtures) Listing(seller *domain.User, name string, price int64) *domain.MarketplaceItem {
	f.t.Helper()
	l := &domain.MarketplaceItem{Name: name, Price: price, SellerID: seller.ID, Seller: seller}
	f.Insert(l)
	return l
}

func (f *Fixtures) Drop(item *domain.Item, mob *domain.Mob, rate float64) *domain.ItemDrop {
	f.t.Helper()
	d := &domain.ItemDrop{ItemID: item.ID, Item: item, MobID: mob.ID, Mob: mob, DropRate: rate}
	f.Insert(d)
	return d
}

func (f *Fixtures) Spawn(mob *domain.Mob, m *domain.Map) *domain.MobSpawn {
	f.t.Helper()
	s := &domain.MobSpawn{MobID: mob.ID, Mob: mob, MapID: m.ID, Map: m}
	f.Insert(s)
	return s
}

func (f *Fixtures) Location(npc *domain.NPC, m *domain.Map) *domain.NPCLocation {
	f.t.Helper()
	l := &domain.NPCLocation{NPCID: npc.ID, NPC: npc, MapID: m.ID, Map: m}
	f.Insert(l)
	return l
}

func (f *Fixtures) ShopItem(npc *domain.NPC, item *domain.Item, price int64) *domain.NPCShopItem {
	f.t.Helper()
	s := &domain.NPCShopItem{NPCID: npc.ID, NPC: npc, ItemID: item.ID, Item: item, Price: price}
	f.Insert(s)
	return s
}

func (f *Fixtures) Reward(quest *domain.Quest, item *domain.Item, quantity, group int64) *domain.QuestReward {
	f.t.Helper()
	r := &domain.QuestReward{QuestID: quest.ID, Quest: quest, ItemID: item.ID, Item: item, Quantity: quantity, RewardGroup: group}
	f.Insert(r)
	return r
}

func (f *Fixtures) Ingredient(recipe *domain.CraftingRecipe, item *domain.Item, quantity int64) *domain.CraftingIngredient {
	f.t.Helper()
	i := &domain.CraftingIngredient{RecipeID: recipe.ID, Recipe: recipe, ItemID: item.ID, Item: item, Quantity: quantity}
	f.Insert(i)
	return i
}

// World is a small connected catalog with one entity of every routed kind.
type World struct {
	Class     *domain.MapleClass
	Job       *domain.Job
	Skill     *domain.Skill
	Continent *domain.Continent
	Region    *domain.Region
	Map       *domain.Map
	Item      *domain.Item
	Mob       *domain.Mob
	NPC       *domain.NPC
	Quest     *domain.Quest
	Recipe    *domain.CraftingRecipe
	User      *domain.User
	Guild     *domain.Guild
	Listing   *domain.MarketplaceItem
}

// World seeds one entity of every routed kind, linked together.
func (f *Fixtures) World() *World {
	f.t.Helper()
	w := &World{}
	w.Class = f.Class("Warrior")
	w.Job = f.Job(w.Class, "Fighter")
	w.Skill = f.Skill(w.Job, "Rage")
	w.Continent = f.Continent("Victoria Island")
	w.Region = f.Region(w.Continent, "Henesys")
	w.Map = f.Map(w.Region, "Henesys Hunting Ground I")
	w.Item = f.Item("Snail Shell")
	w.Mob = f.Mob("Snail", 8)
	w.NPC = f.NPC("Maya")
	w.Quest = f.Quest(w.NPC, "Maya and the Weird Medicine")
	w.Recipe = f.Recipe(w.Item, "Polished Shell")
	w.User = f.User("mapler")
	w.Guild = f.Guild(w.User, "Mushroom Kingdom")
	w.Listing = f.Listing(w.User, "Work Glove 10%", 250000)
	return w
}

// Entities returns the world keyed by kind.
func (w *World) Entities() map[domain.Kind]domain.Entity {
	return map[domain.Kind]domain.Entity{
		domain.KindClass:           w.Class,
		domain.KindJob:             w.Job,
		domain.KindSkill:           w.Skill,
		domain.KindContinent:       w.Continent,
		domain.KindRegion:          w.Region,
		domain.KindMap:             w.Map,
		domain.KindItem:            w.Item,
		domain.KindMob:             w.Mob,
		domain.KindNPC:             w.NPC,
		domain.KindQuest:           w.Quest,
		domain.KindRecipe:          w.Recipe,
		domain.KindUser:            w.User,
		domain.KindGuild:           w.Guild,
		domain.KindMarketplaceItem: w.Listing,
	}
}
