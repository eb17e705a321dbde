package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
	"github.com/mintyhq/minty-api/internal/store"
	"github.com/mintyhq/minty-api/internal/testdb"
)

func newGuildFixture(t *testing.T) (*postgres.Guilds, *testdb.Fixtures, *domain.Guild) {
	t.Helper()
	db := testdb.NewSQLite(t)
	fx := testdb.NewFixtures(t, db)
	guild := fx.Guild(fx.User("founder"), "Ellinia Elders")
	return postgres.NewGuilds(db, nil), fx, guild
}

func TestGuildsFame(t *testing.T) {
	ctx := context.Background()
	guilds, fx, guild := newGuildFixture(t)
	alice := fx.User("alice")
	bob := fx.User("bob")
	carol := fx.User("carol")

	_, err := guilds.SetFame(ctx, guild.ID, alice.ID, domain.Fame)
	require.NoError(t, err)
	_, err = guilds.SetFame(ctx, guild.ID, bob.ID, domain.Fame)
	require.NoError(t, err)
	_, err = guilds.SetFame(ctx, guild.ID, carol.ID, domain.Defame)
	require.NoError(t, err)

	totals, err := guilds.FameTotals(ctx, guild.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FameTotals{Total: 1, Fame: 2, Defame: 1}, totals)

	vote, err := guilds.SetFame(ctx, guild.ID, bob.ID, domain.Defame)
	require.NoError(t, err)
	assert.Equal(t, domain.Defame, vote.Value)

	totals, err = guilds.FameTotals(ctx, guild.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FameTotals{Total: -1, Fame: 1, Defame: 2}, totals)

	require.NoError(t, guilds.RemoveFame(ctx, guild.ID, carol.ID))
	assert.ErrorIs(t, guilds.RemoveFame(ctx, guild.ID, carol.ID), store.ErrNotFound)

	totals, err = guilds.FameTotals(ctx, guild.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FameTotals{Total: 0, Fame: 1, Defame: 1}, totals)

	_, err = guilds.SetFame(ctx, guild.ID, alice.ID, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidFame)
}

func TestGuildsFameTotalsEmpty(t *testing.T) {
	guilds, _, guild := newGuildFixture(t)
	totals, err := guilds.FameTotals(context.Background(), guild.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FameTotals{}, totals)
}

func TestGuildsAddTag(t *testing.T) {
	ctx := context.Background()
	guilds, fx, guild := newGuildFixture(t)
	user := fx.User("tagger")

	first, created, err := guilds.AddTag(ctx, guild.ID, user.ID, "bossers")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := guilds.AddTag(ctx, guild.ID, user.ID, "bossers")
	require.NoError(t, err)
	assert.False(t, created, "repeat tag returns the existing row")
	assert.Equal(t, first.PublicID, again.PublicID)

	for _, v := range []string{"casuals", "drama", "helpful", "social"} {
		_, created, err := guilds.AddTag(ctx, guild.ID, user.ID, v)
		require.NoError(t, err)
		require.True(t, created)
	}

	_, _, err = guilds.AddTag(ctx, guild.ID, user.ID, "weebs")
	assert.ErrorIs(t, err, store.ErrLimitExceeded)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, created, err = guilds.AddTag(ctx, guild.ID, user.ID, "drama")
	require.NoError(t, err, "repeating an applied tag at the cap is not a new tag")
	assert.False(t, created)

	_, _, err = guilds.AddTag(ctx, guild.ID, user.ID, "pirates")
	assert.ErrorIs(t, err, domain.ErrInvalidTag)

	require.NoError(t, guilds.RemoveTag(ctx, guild.ID, user.ID, "drama"))
	assert.ErrorIs(t, guilds.RemoveTag(ctx, guild.ID, user.ID, "drama"), store.ErrNotFound)

	_, created, err = guilds.AddTag(ctx, guild.ID, user.ID, "weebs")
	require.NoError(t, err)
	assert.True(t, created)

	tags, err := guilds.UserTags(ctx, guild.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bossers", "casuals", "helpful", "social", "weebs"}, tags)
}

func TestGuildsConcurrentTagsRespectCap(t *testing.T) {
	ctx := context.Background()
	guilds, fx, guild := newGuildFixture(t)
	user := fx.User("spammer")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		limited int
	)
	for _, v := range domain.TagValues[:10] {
		wg.Add(1)
		go func(value string) {
			defer wg.Done()
			_, ok, err := guilds.AddTag(ctx, guild.ID, user.ID, value)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && ok:
				created++
			case err != nil:
				assert.ErrorIs(t, err, store.ErrLimitExceeded)
				limited++
			}
		}(v)
	}
	wg.Wait()

	assert.Equal(t, domain.MaxTagsPerUser, created)
	assert.Equal(t, 10-domain.MaxTagsPerUser, limited)

	tags, err := guilds.UserTags(ctx, guild.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, tags, domain.MaxTagsPerUser)
}

func TestGuildsTagCounts(t *testing.T) {
	ctx := context.Background()
	guilds, fx, guild := newGuildFixture(t)

	apply := map[string][]string{
		"u1": {"bossers", "social"},
		"u2": {"bossers", "drama"},
		"u3": {"bossers", "social"},
	}
	for name, values := range apply {
		u := fx.User(name)
		for _, v := range values {
			_, _, err := guilds.AddTag(ctx, guild.ID, u.ID, v)
			require.NoError(t, err)
		}
	}

	counts, err := guilds.TagCounts(ctx, guild.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{
		{Value: "bossers", Count: 3},
		{Value: "social", Count: 2},
		{Value: "drama", Count: 1},
	}, counts)
}

func TestGuildsMissingGuild(t *testing.T) {
	ctx := context.Background()
	guilds, fx, guild := newGuildFixture(t)
	user := fx.User("wanderer")
	fx.SoftDelete(guild)

	_, _, err := guilds.AddTag(ctx, guild.ID, user.ID, "uncs")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = guilds.SetFame(ctx, guild.ID, user.ID, domain.Fame)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGuildsHistory(t *testing.T) {
	ctx := context.Background()
	guilds, fx, guild := newGuildFixture(t)
	alice := fx.User("alice")
	bob := fx.User("bob")

	_, err := guilds.SetFame(ctx, guild.ID, alice.ID, domain.Fame)
	require.NoError(t, err)
	_, err = guilds.SetFame(ctx, guild.ID, alice.ID, domain.Fame)
	require.NoError(t, err)
	_, err = guilds.SetFame(ctx, guild.ID, bob.ID, domain.Defame)
	require.NoError(t, err)
	_, err = guilds.SetFame(ctx, guild.ID, alice.ID, domain.Defame)
	require.NoError(t, err)
	require.NoError(t, guilds.RemoveFame(ctx, guild.ID, alice.ID))

	_, _, err = guilds.AddTag(ctx, guild.ID, bob.ID, "moguls")
	require.NoError(t, err)
	_, _, err = guilds.AddTag(ctx, guild.ID, bob.ID, "moguls")
	require.NoError(t, err)
	require.NoError(t, guilds.RemoveTag(ctx, guild.ID, bob.ID, "moguls"))

	type change struct {
		user   string
		value  any
		action domain.HistoryAction
	}

	t.Run("fame newest first", func(t *testing.T) {
		rows, err := guilds.FameHistory(ctx, guild.ID, 0)
		require.NoError(t, err)
		got := make([]change, len(rows))
		for i, h := range rows {
			require.NotNil(t, h.User)
			got[i] = change{h.User.Username, h.Value, h.Action}
		}
		assert.Equal(t, []change{
			{"alice", domain.Defame, domain.HistoryRemoved},
			{"alice", domain.Defame, domain.HistoryChanged},
			{"bob", domain.Defame, domain.HistoryCreated},
			{"alice", domain.Fame, domain.HistoryCreated},
		}, got, "a repeated identical vote records nothing")
	})

	t.Run("fame for one user", func(t *testing.T) {
		rows, err := guilds.FameHistory(ctx, guild.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, bob.ID, rows[0].UserID)
	})

	t.Run("tags", func(t *testing.T) {
		rows, err := guilds.TagHistory(ctx, guild.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.HistoryRemoved, rows[0].Action)
		assert.Equal(t, domain.HistoryCreated, rows[1].Action)
		assert.Equal(t, "moguls", rows[1].Value)
	})

	t.Run("failed removal records nothing", func(t *testing.T) {
		assert.ErrorIs(t, guilds.RemoveTag(ctx, guild.ID, bob.ID, "moguls"), store.ErrNotFound)
		rows, err := guilds.TagHistory(ctx, guild.ID, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("soft-deleted user stays attributed", func(t *testing.T) {
		fx.SoftDelete(bob)
		rows, err := guilds.FameHistory(ctx, guild.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].User)
		assert.Equal(t, bob.PublicID, rows[0].User.PublicID)
	})

	t.Run("other guilds are empty", func(t *testing.T) {
		other := fx.Guild(alice, "Kerning Kids")
		rows, err := guilds.FameHistory(ctx, other.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
