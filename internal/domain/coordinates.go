package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// InvalidCoordinateError reports a latitude/longitude outside the valid range.
// Index is the position in the location list, or -1 when not applicable.
type InvalidCoordinateError struct {
	Index int
	Coord Coordinates
}

func (e *InvalidCoordinateError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid coordinate lat=%v lon=%v: want -90<=lat<=90 and -180<=lon<=180", e.Coord.Lat, e.Coord.Lon)
	}
	return fmt.Sprintf(
		"invalid coordinate at index %d lat=%v lon=%v: want -90<=lat<=90 and -180<=lon<=180",
		e.Index, e.Coord.Lat, e.Coord.Lon,
	)
}

// Validate checks the coordinate range. NaN and infinities are rejected.
func (c Coordinates) Validate() error {
	if !inRange(c.Lat, 90) || !inRange(c.Lon, 180) {
		return &InvalidCoordinateError{Index: -1, Coord: c}
	}
	return nil
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

// ValidateLocations validates every coordinate of a location list and
// reports the first offending index.
func ValidateLocations(locations []Coordinates) error {
	for i, c := range locations {
		if err := c.Validate(); err != nil {
			return &InvalidCoordinateError{Index: i, Coord: c}
		}
	}
	return nil
}

// Return coordinates as [lat, lon].
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lon} }
