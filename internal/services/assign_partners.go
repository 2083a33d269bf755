package services

import (
	"context"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

var ErrNoPartners = errors.New("no delivery partners configured")

// AutoAssign distributes pending orders across partners round-robin in
// order of creation, replacing any previous assignment. It returns the
// number of orders assigned.
func AutoAssign(
	ctx context.Context,
	repo ports.OrderRepository,
	partnerNames []string,
) (int, error) {
	if len(partnerNames) == 0 {
		return 0, fmt.Errorf("auto assign: %w", ErrNoPartners)
	}

	orders, err := repo.ListOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("auto assign: list orders: %w", err)
	}

	partners := make([]*domain.Partner, len(partnerNames))
	for i, name := range partnerNames {
		partners[i] = domain.NewPartner(name)
	}

	assigned := 0
	for _, o := range pendingOrders(orders) {
		p := partners[assigned%len(partners)]

		o.AssignedTo = domain.Unassigned
		if err := p.Assign(o); err != nil {
			return assigned, fmt.Errorf("auto assign: %w", err)
		}
		if err := repo.AssignPartner(ctx, o.ID, p.Name); err != nil {
			return assigned, fmt.Errorf("auto assign: order %s: %w", o.ID, err)
		}
		assigned++
	}

	return assigned, nil
}

// AssignOrder assigns one order to a known partner, or unassigns it when
// partner is domain.Unassigned.
func AssignOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	partnerNames []string,
	id string,
	partner string,
) error {
	if partner != domain.Unassigned && !contains(partnerNames, partner) {
		return fmt.Errorf("assign order: %w: unknown partner %q", ErrInvalidOrder, partner)
	}

	if err := repo.AssignPartner(ctx, id, partner); err != nil {
		return fmt.Errorf("assign order: %w", err)
	}
	return nil
}

// UpdateStatus validates and applies a delivery status change.
func UpdateStatus(ctx context.Context, repo ports.OrderRepository, id string, status string) (domain.OrderStatus, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}

	if err := repo.UpdateStatus(ctx, id, st); err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}
	return st, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
