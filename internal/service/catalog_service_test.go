package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/events"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
	"github.com/mintyhq/minty-api/internal/query"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/service"
	"github.com/mintyhq/minty-api/internal/store"
	"github.com/mintyhq/minty-api/internal/testdb"
)

// recorder collects emitted lifecycle events.
type recorder struct {
	mu     sync.Mutex
	events []*events.LifecycleEvent
}

func (r *recorder) EmitEvent(_ context.Context, e *events.LifecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newCatalog(t *testing.T, opts ...service.CatalogOption) (service.CatalogService, *testdb.Fixtures, *recorder) {
	t.Helper()
	db := testdb.NewSQLite(t)
	rec := &recorder{}
	svc, err := service.NewCatalogService(postgres.NewRecords(db, nil), render.NewRegistry(), rec, nil, opts...)
	require.NoError(t, err)
	return svc, testdb.NewFixtures(t, db), rec
}

func at(kind domain.Kind, id uuid.UUID) service.Request {
	return service.Request{Version: render.V1, Kind: kind, ID: id}
}

func TestNewCatalogServiceValidatesDependencies(t *testing.T) {
	_, err := service.NewCatalogService(nil, render.NewRegistry(), nil, nil)
	var serviceErr *service.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "create_service", serviceErr.Op)

	db := testdb.NewSQLite(t)
	_, err = service.NewCatalogService(postgres.NewRecords(db, nil), nil, nil, nil)
	assert.ErrorAs(t, err, &serviceErr)
}

func TestCatalogRetrieve(t *testing.T) {
	ctx := context.Background()
	svc, fx, _ := newCatalog(t)
	w := fx.World()

	t.Run("relations render as references", func(t *testing.T) {
		obj, err := svc.Retrieve(ctx, at(domain.KindJob, w.Job.PublicID))
		require.NoError(t, err)
		assert.Equal(t, w.Job.PublicID, obj["id"])
		assert.Equal(t, w.Class.PublicID, obj["maple_class"])
	})

	t.Run("expanded relations render inline", func(t *testing.T) {
		r := at(domain.KindSkill, w.Skill.PublicID)
		r.Expand = render.ParseExpand("job.maple_class")
		obj, err := svc.Retrieve(ctx, r)
		require.NoError(t, err)

		job, ok := obj["job"].(render.Object)
		require.True(t, ok, "job should be expanded")
		assert.Equal(t, "Fighter", job["name"])
		class, ok := job["maple_class"].(render.Object)
		require.True(t, ok, "maple_class should be expanded")
		assert.Equal(t, "Warrior", class["name"])
	})

	t.Run("version two adds timestamps", func(t *testing.T) {
		r := at(domain.KindMob, w.Mob.PublicID)
		r.Version = render.V2
		obj, err := svc.Retrieve(ctx, r)
		require.NoError(t, err)
		assert.Contains(t, obj, "created_at")
	})

	t.Run("missing entity", func(t *testing.T) {
		_, err := svc.Retrieve(ctx, at(domain.KindMob, uuid.New()))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.Retrieve(ctx, at(domain.Kind("pet"), uuid.New()))
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})

	t.Run("edges are not addressable", func(t *testing.T) {
		_, err := svc.Retrieve(ctx, at(domain.KindItemDrop, uuid.New()))
		assert.ErrorIs(t, err, service.ErrUnroutableKind)
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})
}

func TestCatalogLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, fx, rec := newCatalog(t)
	mob := fx.Mob("Orange Mushroom", 80)
	r := at(domain.KindMob, mob.PublicID)

	require.NoError(t, svc.Delete(ctx, r))

	_, err := svc.Retrieve(ctx, r)
	assert.ErrorIs(t, err, store.ErrNotFound, "deleted entity is hidden by default")

	all := r
	all.Scope = store.ScopeAll
	obj, err := svc.Retrieve(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, "Orange Mushroom", obj["name"])

	require.NoError(t, svc.Delete(ctx, r), "deleting again moves the stamp")

	obj, restored, err := svc.Restore(ctx, r)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, mob.PublicID, obj["id"])

	_, restored, err = svc.Restore(ctx, r)
	require.NoError(t, err)
	assert.False(t, restored, "restoring an active entity changes nothing")

	require.NoError(t, svc.Purge(ctx, r))
	_, err = svc.Retrieve(ctx, all)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Purge(ctx, r)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, []string{
		events.TypeDeleted,
		events.TypeDeleted,
		events.TypeRestored,
		events.TypePurged,
	}, rec.types())
	for _, e := range rec.events {
		assert.Equal(t, string(domain.KindMob), e.Kind)
		assert.Equal(t, mob.PublicID, e.PublicID)
	}
}

func TestCatalogList(t *testing.T) {
	ctx := context.Background()
	svc, fx, _ := newCatalog(t, service.WithPageSize(2))
	fx.Item("Snail Shell")
	fx.Item("Apple")
	fx.Item("Blue Potion")
	fx.SoftDelete(fx.Item("Arrow for Bow"))

	t.Run("first page in default order", func(t *testing.T) {
		res, err := svc.List(ctx, at(domain.KindItem, uuid.Nil), query.ListRequest{Page: 1})
		require.NoError(t, err)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "Apple", res.Items[0]["name"])
		assert.Equal(t, "Blue Potion", res.Items[1]["name"])
		assert.Equal(t, int64(3), res.Total)
		assert.Equal(t, 2, res.PageSize)
		assert.True(t, res.HasNext)
	})

	t.Run("last page", func(t *testing.T) {
		res, err := svc.List(ctx, at(domain.KindItem, uuid.Nil), query.ListRequest{Page: 2})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Snail Shell", res.Items[0]["name"])
		assert.False(t, res.HasNext)
	})

	t.Run("descending order and search", func(t *testing.T) {
		res, err := svc.List(ctx, at(domain.KindItem, uuid.Nil), query.ListRequest{
			Page:    1,
			OrderBy: "-name",
			Search:  "l",
		})
		require.NoError(t, err)
		names := make([]any, len(res.Items))
		for i, o := range res.Items {
			names[i] = o["name"]
		}
		assert.Equal(t, []any{"Snail Shell", "Blue Potion"}, names)
	})

	t.Run("deleted scope", func(t *testing.T) {
		res, err := svc.List(ctx, at(domain.KindItem, uuid.Nil), query.ListRequest{Page: 1, Scope: store.ScopeDeleted})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Arrow for Bow", res.Items[0]["name"])
	})

	t.Run("order on an undeclared field", func(t *testing.T) {
		_, err := svc.List(ctx, at(domain.KindItem, uuid.Nil), query.ListRequest{Page: 1, OrderBy: "hp"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCatalogRelation(t *testing.T) {
	ctx := context.Background()
	svc, fx, _ := newCatalog(t)
	mob := fx.Mob("Blue Snail", 15)
	shell := fx.Item("Blue Snail Shell")
	potion := fx.Item("Red Potion")
	fx.Drop(potion, mob, 0.1)
	fx.Drop(shell, mob, 0.6)
	stew := fx.Item("Snail Stew")
	fx.Drop(stew, mob, 0.9)
	fx.SoftDelete(stew)

	drops, err := svc.Relation(ctx, at(domain.KindMob, mob.PublicID), "drops")
	require.NoError(t, err)
	require.Len(t, drops, 2)
	assert.Equal(t, shell.PublicID, drops[0]["item"])
	assert.Equal(t, 0.6, drops[0]["drop_rate"])
	assert.Equal(t, potion.PublicID, drops[1]["item"])

	t.Run("expanded rows", func(t *testing.T) {
		r := at(domain.KindMob, mob.PublicID)
		r.Expand = render.ParseExpand("item")
		drops, err := svc.Relation(ctx, r, "drops")
		require.NoError(t, err)
		require.Len(t, drops, 2)
		item, ok := drops[0]["item"].(render.Object)
		require.True(t, ok)
		assert.Equal(t, "Blue Snail Shell", item["name"])
	})

	t.Run("unknown relation", func(t *testing.T) {
		_, err := svc.Relation(ctx, at(domain.KindMob, mob.PublicID), "pets")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleted parent", func(t *testing.T) {
		gone := fx.Mob("Ghost Stump", 40)
		fx.SoftDelete(gone)
		_, err := svc.Relation(ctx, at(domain.KindMob, gone.PublicID), "drops")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()
	svc, fx, rec := newCatalog(t)
	seller := fx.User("mapler")

	t.Run("user", func(t *testing.T) {
		obj, err := svc.Create(ctx, at(domain.KindUser, uuid.Nil), []byte(`{
			"id": "00000000-0000-0000-0000-000000000001",
			"username": "bera",
			"email": "bera@example.com",
			"password": "correct horse battery"
		}`))
		require.NoError(t, err)
		assert.Equal(t, "bera", obj["username"])
		assert.NotContains(t, obj, "password")
		assert.NotEqual(t, uuid.MustParse("00000000-0000-0000-0000-000000000001"), obj["id"],
			"the public id is never taken from input")
		assert.Nil(t, obj["guild"])
	})

	t.Run("listing resolves its seller", func(t *testing.T) {
		obj, err := svc.Create(ctx, at(domain.KindMarketplaceItem, uuid.Nil), []byte(fmt.Sprintf(
			`{"name": "Work Glove 10%%", "price": 250000, "seller": %q}`, seller.PublicID)))
		require.NoError(t, err)
		assert.Equal(t, seller.PublicID, obj["seller"])
		assert.Equal(t, int64(250000), obj["price"])
	})

	t.Run("deleted seller", func(t *testing.T) {
		gone := fx.User("quitter")
		fx.SoftDelete(gone)
		_, err := svc.Create(ctx, at(domain.KindMarketplaceItem, uuid.Nil), []byte(fmt.Sprintf(
			`{"name": "Ilbi", "price": 1, "seller": %q}`, gone.PublicID)))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "seller", verr.Field)
	})

	t.Run("nil seller id", func(t *testing.T) {
		var err error
		require.NotPanics(t, func() {
			_, err = svc.Create(ctx, at(domain.KindMarketplaceItem, uuid.Nil),
				[]byte(`{"name": "Ilbi", "price": 1, "seller": "00000000-0000-0000-0000-000000000000"}`))
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "seller", verr.Field)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := svc.Create(ctx, at(domain.KindUser, uuid.Nil), []byte(`{"username": "nopass"}`))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "password", verr.Field)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Create(ctx, at(domain.KindUser, uuid.Nil), []byte(`{"username": "shorty", "password": "hunter2"}`))
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("taken username", func(t *testing.T) {
		_, err := svc.Create(ctx, at(domain.KindUser, uuid.Nil), []byte(`{"username": "mapler", "password": "another long password"}`))
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("read-only kind", func(t *testing.T) {
		_, err := svc.Create(ctx, at(domain.KindMob, uuid.Nil), []byte(`{"name": "Slime"}`))
		assert.ErrorIs(t, err, render.ErrReadOnlyKind)
	})

	assert.Equal(t, []string{events.TypeCreated, events.TypeCreated}, rec.types())
}

func TestCatalogUpdate(t *testing.T) {
	ctx := context.Background()
	svc, fx, rec := newCatalog(t)
	w := fx.World()

	t.Run("changes only the given fields", func(t *testing.T) {
		obj, err := svc.Update(ctx, at(domain.KindMarketplaceItem, w.Listing.PublicID), []byte(`{"price": 1000, "id": "ignored"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1000), obj["price"])
		assert.Equal(t, "Work Glove 10%", obj["name"])
		assert.Equal(t, w.Listing.PublicID, obj["id"])
	})

	t.Run("clears a nullable relation", func(t *testing.T) {
		fx.Join(w.User, w.Guild)
		obj, err := svc.Update(ctx, at(domain.KindUser, w.User.PublicID), []byte(`{"guild": null}`))
		require.NoError(t, err)
		assert.Nil(t, obj["guild"])
	})

	t.Run("rejects a wrong type", func(t *testing.T) {
		_, err := svc.Update(ctx, at(domain.KindMarketplaceItem, w.Listing.PublicID), []byte(`{"price": "cheap"}`))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Field)
	})

	t.Run("nil owner id", func(t *testing.T) {
		var err error
		require.NotPanics(t, func() {
			_, err = svc.Update(ctx, at(domain.KindGuild, w.Guild.PublicID),
				[]byte(`{"owner": "00000000-0000-0000-0000-000000000000"}`))
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "owner", verr.Field)
	})

	t.Run("deleted entity", func(t *testing.T) {
		gone := fx.Listing(w.User, "Stolen Goods", 1)
		fx.SoftDelete(gone)
		_, err := svc.Update(ctx, at(domain.KindMarketplaceItem, gone.PublicID), []byte(`{"price": 2}`))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty body changes nothing", func(t *testing.T) {
		before := len(rec.types())
		_, err := svc.Update(ctx, at(domain.KindGuild, w.Guild.PublicID), []byte(`{}`))
		require.NoError(t, err)
		assert.Len(t, rec.types(), before)
	})

	assert.Equal(t, []string{events.TypeUpdated, events.TypeUpdated}, rec.types())
}
