package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidRoute = errors.New("invalid route")

// Route is a closed visiting order over a location list, expressed as
// indices. It starts and ends at the depot (index 0).
type Route []int

// Validate checks that the route covers n locations: length n+1, starts
// and ends at 0, and visits every other index exactly once.
func (r Route) Validate(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 locations, got %d", ErrInvalidRoute, n)
	}
	if len(r) != n+1 {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidRoute, len(r), n+1)
	}
	if r[0] != 0 || r[n] != 0 {
		return fmt.Errorf("%w: must start and end at depot, got %d..%d", ErrInvalidRoute, r[0], r[n])
	}

	seen := make([]bool, n)
	seen[0] = true
	for _, idx := range r[1:n] {
		if idx <= 0 || idx >= n {
			return fmt.Errorf("%w: index %d out of range [1,%d)", ErrInvalidRoute, idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("%w: index %d visited twice", ErrInvalidRoute, idx)
		}
		seen[idx] = true
	}

	return nil
}

// RouteResult is the output of a route optimization: the visiting order
// and the total closed-tour distance in kilometers.
// It is immutable planning data and contains no side effects.
type RouteResult struct {
	Route           Route   `json:"route"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

// Represents a single stop in a planned route, resolved back from a route
// index to its coordinate and the orders served there.
type RouteStop struct {
	Index    int
	Location Coordinates
	OrderIDs []string
	Address  string
}

// Represents the planned route for one delivery partner (or for all
// pending orders when Partner is empty).
type RoutePlan struct {
	Partner         string
	Stops           []RouteStop
	TotalDistanceKm float64
	ETA             string
}
