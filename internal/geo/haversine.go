// Package geo ranks arcade records by distance from the observer.
package geo

import (
	"math"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// EarthRadiusMiles is the mean Earth radius used for great-circle distances
const EarthRadiusMiles = 3958.8

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Haversine computes the great-circle distance between two points in miles
func Haversine(a, b arcade.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon) - toRadians(a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}
