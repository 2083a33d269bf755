package services

import (
	"context"
	"errors"
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

type memRepo struct {
	mu     sync.Mutex
	orders []*domain.Order
}

func newMemRepo(orders ...*domain.Order) *memRepo {
	r := &memRepo{}
	for _, o := range orders {
		_ = r.SaveOrder(context.Background(), o)
	}
	return r
}

func (r *memRepo) ListOrders(context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, len(r.orders))
	for i, o := range r.orders {
		cp := *o
		out[i] = &cp
	}
	return out, nil
}

func (r *memRepo) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ports.ErrOrderNotFound
}

func (r *memRepo) SaveOrder(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			r.orders[i] = &cp
			return nil
		}
	}
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	return r.update(id, func(o *domain.Order) { o.Status = status })
}

func (r *memRepo) AssignPartner(_ context.Context, id string, partner string) error {
	return r.update(id, func(o *domain.Order) { o.AssignedTo = partner })
}

func (r *memRepo) update(id string, fn func(*domain.Order)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			fn(o)
			return nil
		}
	}
	return ports.ErrOrderNotFound
}

func (r *memRepo) ClearOrders(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	return nil
}

type mapGeocoder struct {
	mu    sync.Mutex
	known map[string]domain.Coordinates
	calls []string
}

func (g *mapGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, address)
	c, ok := g.known[address]
	if !ok {
		return domain.Coordinates{}, errors.New("no results")
	}
	return c, nil
}

func order(id string, pickup, drop domain.Coordinates, assignee string, status domain.OrderStatus) *domain.Order {
	o := domain.NewOrder("pick "+id, "drop "+id, pickup, drop)
	o.ID = id
	o.AssignedTo = assignee
	o.Status = status
	return o
}
