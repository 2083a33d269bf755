package optimizer

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// SearchStats describes the work done by the local search phase.
type SearchStats struct {
	Passes int
	Moves  int
	// Exhausted is true when the pass cap or the context stopped the search
	// before a local optimum was confirmed.
	Exhausted bool
}

// TwoOpt improves a closed tour with first-improvement 2-opt.
//
// Each pass scans pairs of non-adjacent edges (a,b),(c,d) in a fixed order
// and applies the first reversal of the segment b..c whose exact cost change
// is negative. The search stops after a pass without an improving move, after
// maxPasses passes, or when ctx is done. The input tour is not modified.
//
// Deltas include the reversed inner arcs when m is asymmetric, so the tour
// cost never increases.
func TwoOpt(ctx context.Context, m Matrix, tour domain.Route, maxPasses int) (domain.Route, SearchStats) {
	cur := make(domain.Route, len(tour))
	copy(cur, tour)

	var stats SearchStats

	// Fewer than 4 locations leaves no pair of non-adjacent edges.
	n := len(cur) - 1
	if n < 4 {
		return cur, stats
	}
	if maxPasses <= 0 {
		maxPasses = n
	}

	symmetric := m.Symmetric()

	for {
		if stats.Passes >= maxPasses || ctx.Err() != nil {
			stats.Exhausted = true
			return cur, stats
		}
		stats.Passes++

		i, k, ok := firstImprovingMove(m, cur, symmetric)
		if !ok {
			return cur, stats
		}

		reverse(cur, i+1, k)
		stats.Moves++
	}
}

// firstImprovingMove returns edge positions i<k such that reversing
// cur[i+1..k] strictly shortens the tour.
func firstImprovingMove(m Matrix, cur domain.Route, symmetric bool) (int, int, bool) {
	n := len(cur) - 1

	for i := 0; i <= n-3; i++ {
		for k := i + 2; k <= n-1; k++ {
			// Edges 0 and n-1 share the depot.
			if i == 0 && k == n-1 {
				continue
			}

			a, b := cur[i], cur[i+1]
			c, d := cur[k], cur[k+1]

			delta := m[a][c] + m[b][d] - m[a][b] - m[c][d]
			if !symmetric {
				for p := i + 1; p < k; p++ {
					delta += m[cur[p+1]][cur[p]] - m[cur[p]][cur[p+1]]
				}
			}

			if delta < 0 {
				return i, k, true
			}
		}
	}

	return 0, 0, false
}

func reverse(r domain.Route, i, j int) {
	for i < j {
		r[i], r[j] = r[j], r[i]
		i++
		j--
	}
}
