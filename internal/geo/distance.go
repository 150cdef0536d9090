// Package geo provides great-circle distance and ZIP code normalization
// for the coverage expander.
package geo

import (
	"math"

	"github.com/twpayne/go-geom"
)

// earthRadiusMiles is the mean Earth radius used by the haversine formula.
const earthRadiusMiles = 3959.0

// Coord builds a go-geom coordinate from latitude/longitude in degrees.
// go-geom convention: X is longitude, Y is latitude.
func Coord(lat, lon float64) geom.Coord {
	return geom.Coord{lon, lat}
}

// Miles returns the haversine (great-circle) distance in miles between
// two coordinates.
func Miles(a, b geom.Coord) float64 {
	lat1 := radians(a.Y())
	lat2 := radians(b.Y())
	dLat := radians(b.Y() - a.Y())
	dLon := radians(b.X() - a.X())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
