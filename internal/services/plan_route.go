package services

import (
	"context"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

var ErrNoPendingOrders = errors.New("no pending orders")

// PlanRoute sequences one closed route over a batch of orders.
//
// The first order's pickup is the depot and every drop-off is a stop.
// Duplicate coordinates are collapsed before optimizing (first occurrence
// wins), and the optimizer's index route is mapped back to stops carrying
// the IDs of the orders delivered there.
func PlanRoute(
	ctx context.Context,
	partner string,
	orders []*domain.Order,
	optimizer ports.RouteOptimizer,
) (*domain.RoutePlan, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("plan route: %w", ErrNoPendingOrders)
	}
	if optimizer == nil {
		return nil, errors.New("plan route: optimizer must be non-nil")
	}

	locations := []domain.Coordinates{orders[0].Pickup}
	stops := []domain.RouteStop{{Index: 0, Location: orders[0].Pickup, Address: orders[0].PickupAddress}}
	indexOf := map[domain.Coordinates]int{orders[0].Pickup: 0}

	for _, o := range orders {
		idx, ok := indexOf[o.Drop]
		if !ok {
			idx = len(locations)
			indexOf[o.Drop] = idx
			locations = append(locations, o.Drop)
			stops = append(stops, domain.RouteStop{Index: idx, Location: o.Drop, Address: o.DeliveryAddress})
		}
		stops[idx].OrderIDs = append(stops[idx].OrderIDs, o.ID)
	}

	res, err := optimizer.Optimize(ctx, locations)
	if err != nil {
		return nil, fmt.Errorf("plan route: optimize %d locations: %w", len(locations), err)
	}

	ordered := make([]domain.RouteStop, 0, len(res.Route))
	for _, idx := range res.Route {
		if idx < 0 || idx >= len(stops) {
			return nil, fmt.Errorf("plan route: optimizer returned index %d for %d locations", idx, len(stops))
		}
		ordered = append(ordered, stops[idx])
	}

	return &domain.RoutePlan{
		Partner:         partner,
		Stops:           ordered,
		TotalDistanceKm: res.TotalDistanceKm,
		ETA:             domain.EstimateDelivery(res.TotalDistanceKm),
	}, nil
}

// PlanPendingRoute plans a single route over every pending order.
func PlanPendingRoute(
	ctx context.Context,
	repo ports.OrderRepository,
	optimizer ports.RouteOptimizer,
) (*domain.RoutePlan, error) {
	orders, err := repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan pending route: list orders: %w", err)
	}

	pending := pendingOrders(orders)
	if len(pending) == 0 {
		return nil, fmt.Errorf("plan pending route: %w", ErrNoPendingOrders)
	}

	plan, err := PlanRoute(ctx, "", pending, optimizer)
	if err != nil {
		return nil, fmt.Errorf("plan pending route: %w", err)
	}
	return plan, nil
}

func pendingOrders(orders []*domain.Order) []*domain.Order {
	out := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsPending() {
			out = append(out, o)
		}
	}
	return out
}
