package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for sequencing a single-vehicle closed tour over a location list.
// Index 0 of locations is the depot. Implementations must be safe for
// concurrent use.
type RouteOptimizer interface {
	Optimize(ctx context.Context, locations []domain.Coordinates) (domain.RouteResult, error)
}
