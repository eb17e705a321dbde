package domain

import (
	"fmt"
	"sort"
)

// Kind is the stable token naming an entity type. It is used in routes,
// expansion directives and cycle tracking.
type Kind string

// Catalog kinds.
const (
	KindClass     Kind = "class"
	KindJob       Kind = "job"
	KindSkill     Kind = "skill"
	KindContinent Kind = "continent"
	KindRegion    Kind = "region"
	KindMap       Kind = "map"
	KindItem      Kind = "item"
	KindMob       Kind = "mob"
	KindNPC       Kind = "npc"
	KindQuest     Kind = "quest"
	KindRecipe    Kind = "recipe"
)

// Community kinds.
const (
	KindUser            Kind = "user"
	KindGuild           Kind = "guild"
	KindMarketplaceItem Kind = "marketplace_item"
)

// Edge kinds carry attributes on a relation between two entities.
const (
	KindItemDrop           Kind = "item_drop"
	KindMobSpawn           Kind = "mob_spawn"
	KindNPCLocation        Kind = "npc_location"
	KindNPCShopItem        Kind = "npc_shop_item"
	KindQuestReward        Kind = "quest_reward"
	KindCraftingIngredient Kind = "crafting_ingredient"
	KindGuildFame          Kind = "guild_fame"
	KindGuildTag           Kind = "guild_tag"
)

// Descriptor is the static configuration of one entity kind: how to allocate
// a single value and a slice of values without reflection at call sites.
type Descriptor struct {
	Kind  Kind
	Table string
	Edge  bool

	newOne  func() Entity
	newList func() any
	unpack  func(any) []Entity
}

// New returns a pointer to a zero value of the kind's model.
func (d Descriptor) New() Entity {
	return d.newOne()
}

// NewList returns a pointer to an empty slice of the kind's model, suitable
// as a gorm Find destination.
func (d Descriptor) NewList() any {
	return d.newList()
}

// Entities converts a list allocated by NewList into entities that point
// into the list's backing array.
func (d Descriptor) Entities(list any) []Entity {
	return d.unpack(list)
}

type tabler interface {
	TableName() string
}

func describe[T any, PT interface {
	*T
	Entity
	tabler
}](edge bool) Descriptor {
	zero := PT(new(T))
	return Descriptor{
		Kind:    zero.Kind(),
		Table:   zero.TableName(),
		Edge:    edge,
		newOne:  func() Entity { return PT(new(T)) },
		newList: func() any { return new([]T) },
		unpack: func(list any) []Entity {
			items := *(list.(*[]T))
			out := make([]Entity, len(items))
			for i := range items {
				out[i] = PT(&items[i])
			}
			return out
		},
	}
}

var registry = map[Kind]Descriptor{}

func register(d Descriptor) {
	if _, dup := registry[d.Kind]; dup {
		panic(fmt.Sprintf("domain: kind %q registered twice", d.Kind))
	}
	registry[d.Kind] = d
}

func init() {
	register(describe[MapleClass](false))
	register(describe[Job](false))
	register(describe[Skill](false))
	register(describe[Continent](false))
	register(describe[Region](false))
	register(describe[Map](false))
	register(describe[Item](false))
	register(describe[Mob](false))
	register(describe[NPC](false))
	register(describe[Quest](false))
	register(describe[CraftingRecipe](false))
	register(describe[User](false))
	register(describe[Guild](false))
	register(describe[MarketplaceItem](false))

	register(describe[ItemDrop](true))
	register(describe[MobSpawn](true))
	register(describe[NPCLocation](true))
	register(describe[NPCShopItem](true))
	register(describe[QuestReward](true))
	register(describe[CraftingIngredient](true))
	register(describe[GuildFame](true))
	register(describe[GuildTag](true))
}

// Lookup returns the descriptor registered for kind.
func Lookup(kind Kind) (Descriptor, error) {
	d, ok := registry[kind]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return d, nil
}

// Kinds returns every registered kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Models returns a zero value of every registered model, ordered so that
// referenced tables come before the tables that reference them.
func Models() []any {
	return []any{
		&User{}, &Guild{}, &GuildFame{}, &GuildTag{}, &MarketplaceItem{},
		&MapleClass{}, &Job{}, &Skill{},
		&Continent{}, &Region{}, &Map{},
		&Item{}, &Mob{}, &NPC{},
		&Quest{}, &CraftingRecipe{},
		&ItemDrop{}, &MobSpawn{}, &NPCLocation{}, &NPCShopItem{},
		&QuestReward{}, &CraftingIngredient{},
	}
}

// HistoryModels returns the append-only history tables. They are not entities:
// they have no public id and are never deleted on their own.
func HistoryModels() []any {
	return []any{&GuildFameHistory{}, &GuildTagHistory{}}
}
