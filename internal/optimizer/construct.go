package optimizer

import "route-optimizer-service/internal/domain"

// Construct builds an initial closed tour with a path-cheapest-arc strategy.
//
// Starting at the depot, the path is repeatedly extended with the unvisited
// location reachable by the cheapest arc from the current path end.
// Ties go to the lowest location index, so the result is deterministic.
func Construct(m Matrix) domain.Route {
	n := len(m)
	if n == 0 {
		return nil
	}

	tour := make(domain.Route, 0, n+1)
	visited := make([]bool, n)

	tour = append(tour, 0)
	visited[0] = true
	current := 0

	for len(tour) < n {
		best := -1
		for j := 1; j < n; j++ {
			if visited[j] {
				continue
			}
			// Strict comparison keeps the lowest index on ties.
			if best == -1 || m[current][j] < m[current][best] {
				best = j
			}
		}
		if best == -1 {
			break
		}

		tour = append(tour, best)
		visited[best] = true
		current = best
	}

	return append(tour, 0)
}
