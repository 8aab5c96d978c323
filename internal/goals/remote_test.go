package goals_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyzahq/fyza/internal/app"
	"github.com/fyzahq/fyza/internal/client"
	"github.com/fyzahq/fyza/internal/config"
	"github.com/fyzahq/fyza/internal/db/dbtest"
	"github.com/fyzahq/fyza/internal/goals"
	"github.com/fyzahq/fyza/internal/model"
	"github.com/fyzahq/fyza/internal/routes"
)

// newAPI starts the goals API on a fresh database and returns a client for it
// together with the id of a newly created profile.
func newAPI(t *testing.T) (*client.Client, int64) {
	t.Helper()

	cfg := &config.Config{AppEnv: "test", RateLimitRPS: 1000, RateLimitBurst: 1000}
	handler, _ := routes.SetupRoutes(app.NewWithDB(cfg, dbtest.New(t)))

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	p, err := c.CreateProfile(context.Background(), &model.Profile{FirstName: "Asha", LastName: "Rao"})
	require.NoError(t, err)
	return c, p.ID
}

func TestStoreAgainstAPI(t *testing.T) {
	ctx := context.Background()
	api, owner := newAPI(t)
	store := goals.NewStore(api, goals.WithConcurrency(2))

	require.NoError(t, store.Load(ctx, owner))
	assert.Zero(t, store.Len())

	fund := store.AddPending(owner)
	require.NoError(t, store.UpdateField(fund, goals.FieldName, "Emergency Fund"))
	require.NoError(t, store.UpdateField(fund, goals.FieldTargetAmount, "500000"))
	require.NoError(t, store.UpdateField(fund, goals.FieldTargetDate, "2099-12-31"))
	require.NoError(t, store.UpdateField(fund, goals.FieldPriority, "High"))
	require.NoError(t, store.SaveOne(ctx, fund))

	got := store.Goals()
	require.Len(t, got, 1)
	saved := got[0]
	assert.Equal(t, goals.KindPersisted, saved.ID.Kind())
	assert.Equal(t, "Emergency Fund", saved.Name)
	assert.Equal(t, 500000.0, saved.TargetAmount)
	assert.Equal(t, "2099-12-31", saved.TargetDate.String())
	assert.Equal(t, model.PriorityHigh, saved.Priority)
	require.NotNil(t, saved.CreatedAt)

	house := store.AddPending(owner)
	require.NoError(t, store.UpdateField(house, goals.FieldName, "House"))
	require.NoError(t, store.UpdateField(house, goals.FieldTargetAmount, 9000000.0))
	require.NoError(t, store.UpdateField(house, goals.FieldTargetDate, "2099-01-01"))
	require.NoError(t, store.UpdateField(saved.ID, goals.FieldPriority, model.PriorityLow))

	require.NoError(t, store.SaveAll(ctx, owner))
	after := store.Goals()
	require.Len(t, after, 2)
	assert.Equal(t, model.PriorityLow, after[0].Priority)
	assert.Equal(t, "House", after[1].Name)
	assert.Equal(t, model.PriorityMedium, after[1].Priority)

	fresh := goals.NewStore(api)
	require.NoError(t, fresh.Load(ctx, owner))
	assert.Equal(t, fresh.Goals(), after)

	require.NoError(t, store.RemoveLocal(ctx, saved.ID))
	require.NoError(t, fresh.Load(ctx, owner))
	assert.Equal(t, 1, fresh.Len())
}

func TestStoreSurfacesAPIErrors(t *testing.T) {
	ctx := context.Background()
	api, owner := newAPI(t)
	store := goals.NewStore(api)

	// an unnamed goal fails server validation and stays pending
	id := store.AddPending(owner)
	err := store.SaveOne(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create financial goal")
	assert.Contains(t, err.Error(), "422")

	g, ok := store.Get(id)
	require.True(t, ok)
	assert.True(t, g.Pending())

	// deleting a goal the server does not know about
	other := goals.NewStore(api)
	require.NoError(t, store.UpdateField(id, goals.FieldName, "Car"))
	require.NoError(t, store.UpdateField(id, goals.FieldTargetAmount, 1.0))
	require.NoError(t, store.UpdateField(id, goals.FieldTargetDate, "2099-06-01"))
	require.NoError(t, store.SaveOne(ctx, id))
	require.NoError(t, other.Load(ctx, owner))
	persisted := other.Goals()[0].ID

	require.NoError(t, store.RemoveLocal(ctx, persisted))
	err = other.RemoveLocal(ctx, persisted)
	assert.True(t, client.IsNotFound(err))
	assert.Equal(t, 1, other.Len())
}
