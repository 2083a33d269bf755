package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
)

var (
	depot = domain.Coordinates{Lat: 0, Lon: 0}
	stopA = domain.Coordinates{Lat: 0, Lon: 1}
	stopB = domain.Coordinates{Lat: 0, Lon: 2}
)

type failingOptimizer struct{ err error }

func (f failingOptimizer) Optimize(context.Context, []domain.Coordinates) (domain.RouteResult, error) {
	return domain.RouteResult{}, f.err
}

func TestPlanRoute_DedupesDropsAndMapsStops(t *testing.T) {
	orders := []*domain.Order{
		order("o1", depot, stopA, domain.Unassigned, domain.StatusPending),
		order("o2", stopB, stopB, domain.Unassigned, domain.StatusPending),
		order("o3", depot, stopA, domain.Unassigned, domain.StatusPending),
	}

	plan, err := PlanRoute(context.Background(), "alice", orders, optimizer.NewSolver(optimizer.Options{}))
	require.NoError(t, err)

	require.Len(t, plan.Stops, 4)
	assert.Equal(t, "alice", plan.Partner)
	assert.Equal(t, depot, plan.Stops[0].Location)
	assert.Equal(t, "pick o1", plan.Stops[0].Address)
	assert.Equal(t, depot, plan.Stops[3].Location)

	assert.Equal(t, stopA, plan.Stops[1].Location)
	assert.Equal(t, []string{"o1", "o3"}, plan.Stops[1].OrderIDs)
	assert.Equal(t, "drop o1", plan.Stops[1].Address)

	assert.Equal(t, stopB, plan.Stops[2].Location)
	assert.Equal(t, []string{"o2"}, plan.Stops[2].OrderIDs)

	assert.InDelta(t, 444.78, plan.TotalDistanceKm, 0.05)
	assert.Equal(t, "3 days", plan.ETA)
}

func TestPlanRoute_SingleLocationHasNoSolution(t *testing.T) {
	orders := []*domain.Order{
		order("o1", depot, depot, domain.Unassigned, domain.StatusPending),
	}

	_, err := PlanRoute(context.Background(), "", orders, optimizer.NewSolver(optimizer.Options{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, optimizer.ErrNoSolution))
	assert.True(t, errors.Is(err, optimizer.ErrInsufficientInput))
}

func TestPlanRoute_Empty(t *testing.T) {
	_, err := PlanRoute(context.Background(), "", nil, optimizer.NewSolver(optimizer.Options{}))
	assert.ErrorIs(t, err, ErrNoPendingOrders)
}

func TestPlanRoute_PropagatesOptimizerError(t *testing.T) {
	boom := errors.New("boom")
	orders := []*domain.Order{order("o1", depot, stopA, domain.Unassigned, domain.StatusPending)}

	_, err := PlanRoute(context.Background(), "", orders, failingOptimizer{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestPlanPendingRoute_IgnoresNonPendingOrders(t *testing.T) {
	repo := newMemRepo(
		order("o1", depot, stopA, domain.Unassigned, domain.StatusDelivered),
		order("o2", stopA, stopB, "bob", domain.StatusPending),
		order("o3", depot, depot, domain.Unassigned, domain.StatusPickedUp),
	)

	plan, err := PlanPendingRoute(context.Background(), repo, optimizer.NewSolver(optimizer.Options{}))
	require.NoError(t, err)

	require.Len(t, plan.Stops, 3)
	assert.Equal(t, stopA, plan.Stops[0].Location)
	assert.Equal(t, []string{"o2"}, plan.Stops[1].OrderIDs)
	assert.Equal(t, domain.Route{0, 1, 0}, routeIndices(plan))
}

func TestPlanPendingRoute_NoPending(t *testing.T) {
	repo := newMemRepo(order("o1", depot, stopA, domain.Unassigned, domain.StatusDelivered))

	_, err := PlanPendingRoute(context.Background(), repo, optimizer.NewSolver(optimizer.Options{}))
	assert.ErrorIs(t, err, ErrNoPendingOrders)
}

func routeIndices(p *domain.RoutePlan) domain.Route {
	r := make(domain.Route, len(p.Stops))
	for i, s := range p.Stops {
		r[i] = s.Index
	}
	return r
}
