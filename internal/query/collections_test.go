package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
	"github.com/mintyhq/minty-api/internal/query"
	"github.com/mintyhq/minty-api/internal/store"
	"github.com/mintyhq/minty-api/internal/testdb"
)

func TestCollectionForUnknown(t *testing.T) {
	_, err := query.CollectionFor(domain.KindMob, "rewards")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = query.CollectionFor(domain.KindMarketplaceItem, "drops")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollectionsAreListed(t *testing.T) {
	assert.Equal(t, []string{"drops", "spawns"}, query.Collections(domain.KindMob))
	assert.Equal(t, []string{"locations", "shop_items"}, query.Collections(domain.KindNPC))
	assert.Empty(t, query.Collections(domain.KindMarketplaceItem))
}

func TestMobDropsCollection(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)

	snail := fx.Mob("Snail", 8)
	shell := fx.Item("Snail Shell")
	potion := fx.Item("Red Potion")
	recalled := fx.Item("Recalled Hat")
	fx.Drop(shell, snail, 0.6)
	fx.Drop(potion, snail, 0.05)
	fx.Drop(recalled, snail, 0.9)
	fx.SoftDelete(recalled)

	other := fx.Mob("Blue Snail", 15)
	fx.Drop(shell, other, 0.7)

	c, err := query.CollectionFor(domain.KindMob, "drops")
	require.NoError(t, err)
	assert.Equal(t, "drops", c.Name)

	counted, counter := testdb.Count(db)
	rows, err := postgres.NewRecords(counted, nil).Children(ctx, c.Query(snail.ID))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	first := rows[0].(*domain.ItemDrop)
	second := rows[1].(*domain.ItemDrop)
	assert.Equal(t, "Snail Shell", first.Item.Name)
	assert.InDelta(t, 0.6, first.DropRate, 1e-9)
	assert.Equal(t, "Red Potion", second.Item.Name)
	assert.Equal(t, snail.PublicID, first.Mob.PublicID)
	assert.Equal(t, 1+c.Plan.Len(), counter.N(), "statements: %v", counter.Statements())
}

func TestQuestRewardsCollectionSortsByGroupThenItem(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)

	quest := fx.Quest(fx.NPC("Maya"), "Maya and the Weird Medicine")
	fx.Reward(quest, fx.Item("Zakum Helmet"), 1, 1)
	fx.Reward(quest, fx.Item("Blue Potion"), 5, 0)
	fx.Reward(quest, fx.Item("Apple"), 10, 0)
	fx.Reward(quest, fx.Item("Bronze Sword"), 1, 1)

	c, err := query.CollectionFor(domain.KindQuest, "rewards")
	require.NoError(t, err)
	require.NotNil(t, c.Sort)

	rows, err := postgres.NewRecords(db, nil).Children(ctx, c.Query(quest.ID))
	require.NoError(t, err)
	c.Sort(rows)

	var names []string
	for _, e := range rows {
		names = append(names, e.(*domain.QuestReward).Item.Name)
	}
	assert.Equal(t, []string{"Apple", "Blue Potion", "Bronze Sword", "Zakum Helmet"}, names)
}

func TestReverseCollectionHidesDeletedChildren(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)

	warrior := fx.Class("Warrior")
	fx.Job(warrior, "Fighter")
	page := fx.Job(warrior, "Page")
	fx.Job(fx.Class("Magician"), "Cleric")
	fx.SoftDelete(page)

	c, err := query.CollectionFor(domain.KindClass, "jobs")
	require.NoError(t, err)

	rows, err := postgres.NewRecords(db, nil).Children(ctx, c.Query(warrior.ID))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	job := rows[0].(*domain.Job)
	assert.Equal(t, "Fighter", job.Name)
	require.NotNil(t, job.MapleClass)
	assert.Equal(t, warrior.PublicID, job.MapleClass.PublicID)
}
