package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

func TestAutoAssign_RoundRobin(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(
		order("o1", depot, stopA, domain.Unassigned, domain.StatusPending),
		order("o2", depot, stopA, "carol", domain.StatusPending),
		order("o3", depot, stopA, "carol", domain.StatusDelivered),
		order("o4", depot, stopA, domain.Unassigned, domain.StatusPending),
	)

	n, err := AutoAssign(ctx, repo, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want := map[string]string{"o1": "alice", "o2": "bob", "o3": "carol", "o4": "alice"}
	for id, partner := range want {
		o, err := repo.GetOrder(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, partner, o.AssignedTo, id)
	}
}

func TestAutoAssign_NoPartners(t *testing.T) {
	_, err := AutoAssign(context.Background(), newMemRepo(), nil)
	assert.ErrorIs(t, err, ErrNoPartners)
}

func TestAssignOrder(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(order("o1", depot, stopA, domain.Unassigned, domain.StatusPending))
	partners := []string{"alice"}

	require.NoError(t, AssignOrder(ctx, repo, partners, "o1", "alice"))
	o, _ := repo.GetOrder(ctx, "o1")
	assert.Equal(t, "alice", o.AssignedTo)

	require.NoError(t, AssignOrder(ctx, repo, partners, "o1", domain.Unassigned))
	o, _ = repo.GetOrder(ctx, "o1")
	assert.False(t, o.IsAssigned())

	assert.ErrorIs(t, AssignOrder(ctx, repo, partners, "o1", "mallory"), ErrInvalidOrder)
	assert.ErrorIs(t, AssignOrder(ctx, repo, partners, "missing", "alice"), ports.ErrOrderNotFound)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(order("o1", depot, stopA, domain.Unassigned, domain.StatusPending))

	st, err := UpdateStatus(ctx, repo, "o1", "picked up")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickedUp, st)

	o, _ := repo.GetOrder(ctx, "o1")
	assert.Equal(t, domain.StatusPickedUp, o.Status)

	_, err = UpdateStatus(ctx, repo, "o1", "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = UpdateStatus(ctx, repo, "missing", "Delivered")
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}
