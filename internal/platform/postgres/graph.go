package postgres

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/store"
)

// Graph implements store.GraphStore.
type Graph struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ store.GraphStore = (*Graph)(nil)

// NewGraph creates a Graph store.
func NewGraph(db *gorm.DB, log *slog.Logger) *Graph {
	if log == nil {
		log = slog.Default()
	}
	return &Graph{db: db, logger: log.With("component", "graph_store")}
}

// AddDrop implements store.GraphStore.
func (g *Graph) AddDrop(ctx context.Context, item *domain.Item, mob *domain.Mob, dropRate float64) (*domain.ItemDrop, error) {
	if err := requirePersisted("item", item); err != nil {
		return nil, err
	}
	if err := requirePersisted("mob", mob); err != nil {
		return nil, err
	}
	edge := &domain.ItemDrop{ItemID: item.ID, Item: item, MobID: mob.ID, Mob: mob, DropRate: dropRate}
	if err := g.link(ctx, edge, "item_id = ? AND mob_id = ?", item.ID, mob.ID); err != nil {
		return nil, err
	}
	return edge, nil
}

// AddSpawn implements store.GraphStore.
func (g *Graph) AddSpawn(ctx context.Context, mob *domain.Mob, m *domain.Map) (*domain.MobSpawn, error) {
	if err := requirePersisted("mob", mob); err != nil {
		return nil, err
	}
	if err := requirePersisted("map", m); err != nil {
		return nil, err
	}
	edge := &domain.MobSpawn{MobID: mob.ID, Mob: mob, MapID: m.ID, Map: m}
	if err := g.link(ctx, edge, "mob_id = ? AND map_id = ?", mob.ID, m.ID); err != nil {
		return nil, err
	}
	return edge, nil
}

// AddLocation implements store.GraphStore.
func (g *Graph) AddLocation(ctx context.Context, npc *domain.NPC, m *domain.Map) (*domain.NPCLocation, error) {
	if err := requirePersisted("npc", npc); err != nil {
		return nil, err
	}
	if err := requirePersisted("map", m); err != nil {
		return nil, err
	}
	edge := &domain.NPCLocation{NPCID: npc.ID, NPC: npc, MapID: m.ID, Map: m}
	if err := g.link(ctx, edge, "npc_id = ? AND map_id = ?", npc.ID, m.ID); err != nil {
		return nil, err
	}
	return edge, nil
}

// AddShopItem implements store.GraphStore.
func (g *Graph) AddShopItem(ctx context.Context, npc *domain.NPC, item *domain.Item, price int64) (*domain.NPCShopItem, error) {
	if err := requirePersisted("npc", npc); err != nil {
		return nil, err
	}
	if err := requirePersisted("item", item); err != nil {
		return nil, err
	}
	edge := &domain.NPCShopItem{NPCID: npc.ID, NPC: npc, ItemID: item.ID, Item: item, Price: price}
	if err := g.link(ctx, edge, "npc_id = ? AND item_id = ?", npc.ID, item.ID); err != nil {
		return nil, err
	}
	return edge, nil
}

// AddReward implements store.GraphStore. A zero quantity means one.
func (g *Graph) AddReward(
	ctx context.Context,
	quest *domain.Quest,
	item *domain.Item,
	quantity, group int64,
) (*domain.QuestReward, error) {
	if err := requirePersisted("quest", quest); err != nil {
		return nil, err
	}
	if err := requirePersisted("item", item); err != nil {
		return nil, err
	}
	edge := &domain.QuestReward{
		QuestID:     quest.ID,
		Quest:       quest,
		ItemID:      item.ID,
		Item:        item,
		Quantity:    quantity,
		RewardGroup: group,
	}
	if err := g.link(ctx, edge, "quest_id = ? AND item_id = ?", quest.ID, item.ID); err != nil {
		return nil, err
	}
	return edge, nil
}

// AddIngredient implements store.GraphStore. A zero quantity means one.
func (g *Graph) AddIngredient(
	ctx context.Context,
	recipe *domain.CraftingRecipe,
	item *domain.Item,
	quantity int64,
) (*domain.CraftingIngredient, error) {
	if err := requirePersisted("recipe", recipe); err != nil {
		return nil, err
	}
	if err := requirePersisted("item", item); err != nil {
		return nil, err
	}
	edge := &domain.CraftingIngredient{RecipeID: recipe.ID, Recipe: recipe, ItemID: item.ID, Item: item, Quantity: quantity}
	if err := g.link(ctx, edge, "recipe_id = ? AND item_id = ?", recipe.ID, item.ID); err != nil {
		return nil, err
	}
	return edge, nil
}

// link validates edge and inserts it unless the pair already exists. A
// soft-deleted edge still occupies its pair.
func (g *Graph) link(ctx context.Context, edge domain.Entity, pair string, args ...any) error {
	if err := domain.Validate(edge); err != nil {
		return err
	}

	kind := string(edge.Kind())
	err := store.RunInTransaction(ctx, g.db, func(ctx context.Context, tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(edge).Where(pair, args...).Count(&n).Error; err != nil {
			return MapError(err)
		}
		if n > 0 {
			return store.NewStoreError(kind, "link", "pair already exists", store.ErrDuplicate)
		}
		if err := tx.Omit(clause.Associations).Create(edge).Error; err != nil {
			return store.NewStoreError(kind, "link", "insert failed", MapError(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, g.logger).Debug("edge created",
		slog.String("kind", kind),
		slog.String("public_id", edge.Base().PublicID.String()))
	return nil
}

func requirePersisted[T any, PT interface {
	*T
	domain.Entity
}](field string, e PT) error {
	if e == nil || e.Base().ID == 0 {
		return domain.NewValidationError(field, "this field is required", nil)
	}
	return nil
}
