package geo

import (
	"errors"
	"math"
)

// ErrMissingCoordinates is returned when an attempt carries no coordinates.
// Missing coordinates can never satisfy a geofence.
var ErrMissingCoordinates = errors.New("coordinates are required")

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// HaversineDistance menghitung jarak antara dua titik koordinat dalam Meter.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // Jari-jari bumi dalam Meter

	// Konversi ke Radian
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	// Rumus Haversine
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// IsWithinRadius reports whether point lies within radiusMeters of center.
// A distance exactly at the boundary counts as inside. A nil point is
// rejected with ErrMissingCoordinates.
func IsWithinRadius(point *Point, center Point, radiusMeters int) (bool, error) {
	if point == nil {
		return false, ErrMissingCoordinates
	}

	distance := HaversineDistance(point.Latitude, point.Longitude, center.Latitude, center.Longitude)
	return distance <= float64(radiusMeters), nil
}
