package model

import (
	"fmt"
	"log/slog"
)

// Coordinate represents a geographical location with a latitude and
// longitude in degrees. It is the position of a map click, of the
// user (as reported by the browser geolocation API), and of every
// recorded workout.
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}

// Pair returns the coordinate as a [lat, lng] pair which is the form
// that Leaflet and the persisted history expect.
func (c Coordinate) Pair() [2]float64 {
	return [2]float64{c.Lat, c.Lon}
}

// CoordinateFromPair is the inverse of the Coordinate.Pair method.
func CoordinateFromPair(p [2]float64) Coordinate {
	return Coordinate{Lat: p[0], Lon: p[1]}
}

// String formats `c` like (lat, lon) with six decimal digits.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// LogValue implements slog.LogValuer.
func (c Coordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", c.Lat),
		slog.Float64("lon", c.Lon),
	)
}
