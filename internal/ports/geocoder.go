package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional persistent cache mapping normalized addresses to coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
