package optimizer

import (
	"math"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// Matrix holds integer arc costs in meters indexed by location list position.
type Matrix [][]int

// DistanceFunc returns the distance between two coordinates in kilometers.
type DistanceFunc func(a, b domain.Coordinates) float64

// BuildMatrix computes the cost of every ordered pair of locations.
// Kilometers are scaled to meters and rounded so the search compares integers.
func BuildMatrix(locations []domain.Coordinates, dist DistanceFunc) Matrix {
	if dist == nil {
		dist = geo.Haversine
	}

	n := len(locations)
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			m[i][j] = int(math.Round(dist(locations[i], locations[j]) * 1000))
		}
	}

	return m
}

// Symmetric reports whether m[i][j] == m[j][i] for every pair.
func (m Matrix) Symmetric() bool {
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			if m[i][j] != m[j][i] {
				return false
			}
		}
	}
	return true
}

// TourCost sums consecutive arc costs along tour.
func TourCost(m Matrix, tour domain.Route) int {
	total := 0
	for i := 0; i+1 < len(tour); i++ {
		total += m[tour[i]][tour[i+1]]
	}
	return total
}
