// Package optimizer sequences a single-vehicle closed tour over a list of
// coordinates: it builds a haversine distance matrix, constructs an initial
// tour with a cheapest-arc heuristic and improves it with bounded 2-opt.
//
// The solver is a heuristic. It is deterministic and holds no state between
// calls, so one Solver may be shared by concurrent callers.
package optimizer

import (
	"context"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

var (
	// ErrNoSolution is the "no solution" sentinel. Every recoverable solver
	// failure wraps it.
	ErrNoSolution = errors.New("optimizer: no solution")

	ErrInsufficientInput = fmt.Errorf("%w: at least two locations are required", ErrNoSolution)
	ErrSearchFailure     = fmt.Errorf("%w: search did not produce a closed tour", ErrNoSolution)
)

type Options struct {
	// MaxPasses caps 2-opt passes. Zero means one pass per location.
	MaxPasses int
	// DisableLocalSearch returns the construction tour unchanged.
	DisableLocalSearch bool
	// Distance overrides the great-circle distance, mainly for tests.
	Distance DistanceFunc
}

// Solver implements ports.RouteOptimizer.
type Solver struct {
	opts Options
}

func NewSolver(opts Options) *Solver {
	return &Solver{opts: opts}
}

// Optimize solves with default options.
func Optimize(locations []domain.Coordinates) (domain.RouteResult, error) {
	return NewSolver(Options{}).solve(context.Background(), locations)
}

// Optimize returns the visiting order over locations (index 0 is the depot)
// and the closed tour length in kilometers.
//
// Fewer than two locations yields ErrInsufficientInput. Out-of-range
// coordinates yield a *domain.InvalidCoordinateError. When ctx is done the
// local search stops and the best tour so far is returned.
func (s *Solver) Optimize(ctx context.Context, locations []domain.Coordinates) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)

	return s.solve(ctx, locations)
}

func (s *Solver) solve(ctx context.Context, locations []domain.Coordinates) (domain.RouteResult, error) {
	if len(locations) < 2 {
		return domain.RouteResult{}, ErrInsufficientInput
	}

	if err := domain.ValidateLocations(locations); err != nil {
		return domain.RouteResult{}, fmt.Errorf("optimize: %w", err)
	}

	m := BuildMatrix(locations, s.opts.Distance)

	tour := Construct(m)
	if tour.Validate(len(locations)) != nil {
		return domain.RouteResult{}, ErrSearchFailure
	}

	if !s.opts.DisableLocalSearch {
		tour, _ = TwoOpt(ctx, m, tour, s.opts.MaxPasses)
	}

	return extract(m, tour, len(locations))
}

// extract converts the final tour into a result, rejecting invalid tours.
func extract(m Matrix, tour domain.Route, n int) (domain.RouteResult, error) {
	if err := tour.Validate(n); err != nil {
		return domain.RouteResult{}, fmt.Errorf("%w: %v", ErrSearchFailure, err)
	}

	return domain.RouteResult{
		Route:           tour,
		TotalDistanceKm: float64(TourCost(m, tour)) / 1000.0,
	}, nil
}
