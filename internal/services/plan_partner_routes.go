package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
	"route-optimizer-service/internal/ports"
)

// maxConcurrentPlans bounds the partner routes optimized at once.
const maxConcurrentPlans = 5

// PlanPartnerRoutes computes an independent single-vehicle route for each
// partner over the pending orders assigned to them.
//
// Partners without pending orders, or whose orders collapse to a single
// location, get no plan. Plans are returned in partner order.
func PlanPartnerRoutes(
	ctx context.Context,
	repo ports.OrderRepository,
	opt ports.RouteOptimizer,
	partnerNames []string,
) ([]*domain.RoutePlan, error) {
	orders, err := repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan partner routes: list orders: %w", err)
	}

	partners := make([]*domain.Partner, 0, len(partnerNames))
	byName := make(map[string]*domain.Partner, len(partnerNames))
	for _, name := range partnerNames {
		if _, dup := byName[name]; dup {
			continue
		}
		p := domain.NewPartner(name)
		partners = append(partners, p)
		byName[name] = p
	}

	for _, o := range orders {
		if p, ok := byName[o.AssignedTo]; ok {
			if err := p.Assign(o); err != nil {
				return nil, fmt.Errorf("plan partner routes: %w", err)
			}
		}
	}

	plans := make([]*domain.RoutePlan, len(partners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPlans)

	for i, p := range partners {
		pending := p.PendingOrders()
		if len(pending) == 0 {
			continue
		}

		g.Go(func() error {
			plan, err := PlanRoute(gctx, p.Name, pending, opt)
			if errors.Is(err, optimizer.ErrNoSolution) {
				log.Printf("partner route skipped: partner=%q orders=%d err=%v", p.Name, len(pending), err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("plan partner routes: partner %q: %w", p.Name, err)
			}
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*domain.RoutePlan, 0, len(plans))
	for _, p := range plans {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
