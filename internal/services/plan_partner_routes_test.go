package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
)

func TestPlanPartnerRoutes(t *testing.T) {
	repo := newMemRepo(
		order("a1", depot, stopA, "alice", domain.StatusPending),
		order("b1", stopB, stopB, "bob", domain.StatusPending),
		order("a2", depot, stopB, "alice", domain.StatusPending),
		order("a3", depot, stopA, "alice", domain.StatusDelivered),
		order("u1", depot, stopA, domain.Unassigned, domain.StatusPending),
		order("d1", depot, stopA, "dave", domain.StatusPending),
	)

	plans, err := PlanPartnerRoutes(
		context.Background(), repo, optimizer.NewSolver(optimizer.Options{}),
		[]string{"alice", "bob", "carol", "alice"},
	)
	require.NoError(t, err)

	// bob's only order collapses to one location, carol has none and dave
	// is not a configured partner.
	require.Len(t, plans, 1)
	p := plans[0]
	assert.Equal(t, "alice", p.Partner)
	assert.Equal(t, domain.Route{0, 1, 2, 0}, routeIndices(p))
	assert.Equal(t, []string{"a1"}, p.Stops[1].OrderIDs)
	assert.Equal(t, []string{"a2"}, p.Stops[2].OrderIDs)
}

func TestPlanPartnerRoutes_PreservesPartnerOrder(t *testing.T) {
	var seeded []*domain.Order
	names := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	for _, name := range names {
		seeded = append(seeded, order(name+"-o", depot, stopA, name, domain.StatusPending))
	}
	repo := newMemRepo(seeded...)

	plans, err := PlanPartnerRoutes(context.Background(), repo, optimizer.NewSolver(optimizer.Options{}), names)
	require.NoError(t, err)
	require.Len(t, plans, len(names))
	for i, p := range plans {
		assert.Equal(t, names[i], p.Partner)
	}
}

func TestPlanPartnerRoutes_OptimizerFailure(t *testing.T) {
	repo := newMemRepo(order("a1", depot, stopA, "alice", domain.StatusPending))

	_, err := PlanPartnerRoutes(context.Background(), repo, failingOptimizer{err: assert.AnError}, []string{"alice"})
	assert.ErrorIs(t, err, assert.AnError)
}
