package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
	"github.com/mintyhq/minty-api/internal/store"
	"github.com/mintyhq/minty-api/internal/testdb"
)

func TestGraphAddIngredient(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)
	graph := postgres.NewGraph(db, nil)

	ore := fx.Item("Bronze Ore")
	plate := fx.Item("Bronze Plate")
	recipe := fx.Recipe(plate, "Bronze Plate")

	ing, err := graph.AddIngredient(ctx, recipe, ore, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ing.Quantity, "zero quantity defaults to one")
	assert.NotZero(t, ing.ID)

	dup, err := graph.AddIngredient(ctx, recipe, ore, 10)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Nil(t, dup, "a failed link returns no edge")

	invalid, err := graph.AddIngredient(ctx, recipe, plate, -1)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
	assert.Nil(t, invalid)
}

func TestGraphSoftDeletedEdgeStillOccupiesPair(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)
	graph := postgres.NewGraph(db, nil)

	mob := fx.Mob("Pig", 40)
	m := fx.Map(fx.Region(fx.Continent("Victoria Island"), "Henesys"), "Pig Farm")
	spawn, err := graph.AddSpawn(ctx, mob, m)
	require.NoError(t, err)
	fx.SoftDelete(spawn)

	_, err = graph.AddSpawn(ctx, mob, m)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestGraphValidation(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)
	graph := postgres.NewGraph(db, nil)

	item := fx.Item("Green Mushroom Cap")
	mob := fx.Mob("Green Mushroom", 90)
	npc := fx.NPC("Mr. Thunder")
	quest := fx.Quest(npc, "Thunder's Request")

	tests := []struct {
		name      string
		add       func() (any, error)
		wantField string
	}{
		{
			name:      "drop rate above one",
			add:       func() (any, error) { return graph.AddDrop(ctx, item, mob, 1.01) },
			wantField: "drop_rate",
		},
		{
			name:      "negative shop price",
			add:       func() (any, error) { return graph.AddShopItem(ctx, npc, item, -5) },
			wantField: "price",
		},
		{
			name:      "negative reward group",
			add:       func() (any, error) { return graph.AddReward(ctx, quest, item, 1, -1) },
			wantField: "reward_group",
		},
		{
			name:      "missing endpoint",
			add:       func() (any, error) { return graph.AddLocation(ctx, npc, nil) },
			wantField: "map",
		},
		{
			name:      "unsaved endpoint",
			add:       func() (any, error) { return graph.AddDrop(ctx, &domain.Item{}, mob, 0.5) },
			wantField: "item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, err := tt.add()
			assert.Nil(t, edge)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGraphAddEdges(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)
	graph := postgres.NewGraph(db, nil)
	w := fx.World()

	drop, err := graph.AddDrop(ctx, w.Item, w.Mob, 0.35)
	require.NoError(t, err)
	assert.Equal(t, w.Item, drop.Item)

	_, err = graph.AddSpawn(ctx, w.Mob, w.Map)
	require.NoError(t, err)
	_, err = graph.AddLocation(ctx, w.NPC, w.Map)
	require.NoError(t, err)
	_, err = graph.AddShopItem(ctx, w.NPC, w.Item, 12)
	require.NoError(t, err)

	reward, err := graph.AddReward(ctx, w.Quest, w.Item, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reward.Quantity)
	assert.False(t, reward.Guaranteed())

	dup, err := graph.AddReward(ctx, w.Quest, w.Item, 3, 0)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Nil(t, dup)
}
