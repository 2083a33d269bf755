package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Optional persistent cache for optimization results keyed by a hash of the
// location list.
type RouteCache interface {
	// Return the cached result and whether it was found.
	Get(ctx context.Context, key string) (domain.RouteResult, bool, error)
	Put(ctx context.Context, key string, result domain.RouteResult) error
}
