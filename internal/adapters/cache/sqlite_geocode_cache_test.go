package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
)

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, repositories.InitSchema(ctx, db))

	c := NewSqliteGeocodeCache(db)

	got, err := c.GetMany(ctx, []string{"Connaught Place"})
	require.NoError(t, err)
	assert.Empty(t, got)

	cp := domain.Coordinates{Lat: 28.6315, Lon: 77.2167}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"Connaught Place": cp}))
	assert.Error(t, c.PutMany(ctx, map[string]domain.Coordinates{" ": cp}))

	got, err = c.GetMany(ctx, []string{" Connaught Place ", "Connaught Place", "", "Unknown"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{"Connaught Place": cp}, got)
}

func TestUniqueAddresses(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueAddresses([]string{" a", "b", "", "a "}))
}
