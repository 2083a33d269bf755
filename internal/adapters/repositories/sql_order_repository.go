package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// SQL implementation of the OrderRepository port, shared by SQLite and
// Postgres. Orders are listed in insertion order.
type SQLOrderRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSqliteOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db, Dialect: SQLite}
}

func NewPostgresOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db, Dialect: Postgres}
}

const orderColumns = `
		id,
		pickup_address,
		delivery_address,
		assigned_to,
		status,
		lat_pick,
		lon_pick,
		lat_drop,
		lon_drop,
		eta`

// Return all orders stored in the database.
func (s *SQLOrderRepository) ListOrders(ctx context.Context) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.List")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `SELECT` + orderColumns + `
	FROM orders
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

func (s *SQLOrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := s.Dialect.Rebind(`SELECT` + orderColumns + `
	FROM orders
	WHERE id = ?;
	`)

	o, err := scanOrder(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order id=%s: %w", id, ports.ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order id=%s: %w", id, err)
	}

	return o, nil
}

// Insert or replace an order. Replacing keeps the original position.
func (s *SQLOrderRepository) SaveOrder(ctx context.Context, o *domain.Order) error {
	if s.DB == nil {
		return errors.New("order repository: DB is nil")
	}
	if o == nil || o.ID == "" {
		return errors.New("save order: order must have an ID")
	}

	query := s.Dialect.Rebind(`
	INSERT INTO orders (
		seq,` + orderColumns + `
	)
	VALUES ((SELECT COALESCE(MAX(seq), 0) + 1 FROM orders), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET pickup_address = excluded.pickup_address,
		delivery_address = excluded.delivery_address,
		assigned_to = excluded.assigned_to,
		status = excluded.status,
		lat_pick = excluded.lat_pick,
		lon_pick = excluded.lon_pick,
		lat_drop = excluded.lat_drop,
		lon_drop = excluded.lon_drop,
		eta = excluded.eta;
	`)

	_, err := s.DB.ExecContext(ctx, query,
		o.ID,
		o.PickupAddress,
		o.DeliveryAddress,
		o.AssignedTo,
		string(o.Status),
		o.Pickup.Lat,
		o.Pickup.Lon,
		o.Drop.Lat,
		o.Drop.Lon,
		o.ETA,
	)
	if err != nil {
		return fmt.Errorf("save order id=%s: %w", o.ID, err)
	}

	return nil
}

func (s *SQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return s.updateColumn(ctx, "status", id, string(status))
}

func (s *SQLOrderRepository) AssignPartner(ctx context.Context, id string, partner string) error {
	return s.updateColumn(ctx, "assigned_to", id, partner)
}

// updateColumn sets a single whitelisted column on one order.
func (s *SQLOrderRepository) updateColumn(ctx context.Context, column, id, value string) error {
	if s.DB == nil {
		return errors.New("order repository: DB is nil")
	}

	// Only the column name is interpolated and it never comes from user input.
	query := s.Dialect.Rebind(fmt.Sprintf(`UPDATE orders SET %s = ? WHERE id = ?;`, column))

	res, err := s.DB.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("update order %s id=%s: %w", column, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %s id=%s: rows affected: %w", column, id, err)
	}
	if n == 0 {
		return fmt.Errorf("update order %s id=%s: %w", column, id, ports.ErrOrderNotFound)
	}

	return nil
}

func (s *SQLOrderRepository) ClearOrders(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("order repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM orders;`); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(
		&o.ID,
		&o.PickupAddress,
		&o.DeliveryAddress,
		&o.AssignedTo,
		&status,
		&o.Pickup.Lat,
		&o.Pickup.Lon,
		&o.Drop.Lat,
		&o.Drop.Lon,
		&o.ETA,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}
	o.Status = domain.OrderStatus(status)

	return &o, nil
}
