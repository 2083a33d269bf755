package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

func newTestRepo(t *testing.T) *SQLOrderRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))
	return NewSqliteOrderRepository(db)
}

func TestOrderRepositorySaveAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := domain.NewOrder("pick A", "drop A", domain.Coordinates{Lat: 28.1, Lon: 77.1}, domain.Coordinates{Lat: 28.2, Lon: 77.2})
	b := domain.NewOrder("pick B", "drop B", domain.Coordinates{Lat: 28.3, Lon: 77.3}, domain.Coordinates{Lat: 28.4, Lon: 77.4})
	require.NoError(t, repo.SaveOrder(ctx, a))
	require.NoError(t, repo.SaveOrder(ctx, b))

	// Replacing keeps insertion order.
	a.ETA = "1 day"
	require.NoError(t, repo.SaveOrder(ctx, a))

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, a, orders[0])
	assert.Equal(t, b, orders[1])
}

func TestOrderRepositoryUpdates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	o := domain.NewOrder("p", "d", domain.Coordinates{Lat: 1, Lon: 1}, domain.Coordinates{Lat: 2, Lon: 2})
	require.NoError(t, repo.SaveOrder(ctx, o))

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, domain.StatusPickedUp))
	require.NoError(t, repo.AssignPartner(ctx, o.ID, "Partner A"))

	got, err := repo.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickedUp, got.Status)
	assert.Equal(t, "Partner A", got.AssignedTo)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.StatusDelivered), ports.ErrOrderNotFound)
	_, err = repo.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestOrderRepositoryClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveOrder(ctx, domain.NewOrder("p", "d", domain.Coordinates{}, domain.Coordinates{})))
	require.NoError(t, repo.ClearOrders(ctx))

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSeedFromJSON(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, SeedFromJSON(ctx, repo, "testdata/orders.json"))
	// Seeding twice upserts the order with a fixed ID.
	require.NoError(t, SeedFromJSON(ctx, repo, "testdata/orders.json"))

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "seed-1", orders[0].ID)
	assert.Equal(t, domain.StatusPending, orders[0].Status)
	assert.Equal(t, "1 day", orders[0].ETA)
}

func TestDialectRebind(t *testing.T) {
	q := "UPDATE orders SET status = ? WHERE id = ?;"

	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "UPDATE orders SET status = $1 WHERE id = $2;", Postgres.Rebind(q))
}
