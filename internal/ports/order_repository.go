package ports

import (
	"context"
	"errors"
	"route-optimizer-service/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Port: a boundary for storing and retrieving Order entities.
type OrderRepository interface {
	// Retrieve all orders in insertion order.
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	// Insert or replace an order by ID.
	SaveOrder(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	AssignPartner(ctx context.Context, id string, partner string) error
	ClearOrders(ctx context.Context) error
}
