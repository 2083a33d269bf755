// Package geo computes great-circle distances between coordinates.
package geo

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometers.
//
// Inputs are assumed valid (see domain.Coordinates.Validate). The asin
// argument is clamped so rounding near antipodal points cannot produce NaN.
func Haversine(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dlat := lat2 - lat1
	dlon := toRadians(b.Lon) - toRadians(a.Lon)

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = clamp(h, 0, 1)

	c := 2 * math.Asin(clamp(math.Sqrt(h), -1, 1))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
