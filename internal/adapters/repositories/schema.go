package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

// Initialize the database schema. The statements are valid for both SQLite
// and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		seq BIGINT NOT NULL,
		pickup_address TEXT NOT NULL,
		delivery_address TEXT NOT NULL,
		assigned_to TEXT NOT NULL,
		status TEXT NOT NULL,
		lat_pick DOUBLE PRECISION NOT NULL,
		lon_pick DOUBLE PRECISION NOT NULL,
		lat_drop DOUBLE PRECISION NOT NULL,
		lon_drop DOUBLE PRECISION NOT NULL,
		eta TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_status_seq
    ON orders(status, seq);
	`

	statements := []string{
		createOrdersQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OrderSeed struct {
	ID              string  `json:"id"`
	PickupAddress   string  `json:"pickup_address"`
	DeliveryAddress string  `json:"delivery_address"`
	LatPick         float64 `json:"lat_pick"`
	LonPick         float64 `json:"lon_pick"`
	LatDrop         float64 `json:"lat_drop"`
	LonDrop         float64 `json:"lon_drop"`
}

// Populate the order store from a JSON file. Seeds without an ID get a
// generated one; seeds with an ID are upserted.
func SeedFromJSON(ctx context.Context, repo ports.OrderRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed orders: parse json: %w", err)
	}

	orders := make([]*domain.Order, 0, len(data))
	for i, item := range data {
		pickup := strings.TrimSpace(item.PickupAddress)
		drop := strings.TrimSpace(item.DeliveryAddress)
		if pickup == "" || drop == "" {
			return fmt.Errorf("seed orders: item at index %d: addresses cannot be empty", i+1)
		}

		o := domain.NewOrder(
			pickup,
			drop,
			domain.Coordinates{Lat: item.LatPick, Lon: item.LonPick},
			domain.Coordinates{Lat: item.LatDrop, Lon: item.LonDrop},
		)
		if err := domain.ValidateLocations([]domain.Coordinates{o.Pickup, o.Drop}); err != nil {
			return fmt.Errorf("seed orders: item at index %d: %w", i+1, err)
		}
		o.ETA = domain.EstimateDelivery(geo.Haversine(o.Pickup, o.Drop))
		if id := strings.TrimSpace(item.ID); id != "" {
			o.ID = id
		}
		orders = append(orders, o)
	}

	for _, o := range orders {
		if err := repo.SaveOrder(ctx, o); err != nil {
			return fmt.Errorf("seed orders: save order id=%s: %w", o.ID, err)
		}
	}

	return nil
}
