package office

import "time"

// Location is the configured office geofence. One row per deployment;
// mutated only through the administrative update endpoint.
type Location struct {
	Latitude     float64
	Longitude    float64
	Address      string
	RadiusMeters int
	UpdatedAt    time.Time
}

// Radius bounds enforced on every administrative update.
const (
	MinRadiusMeters = 50
	MaxRadiusMeters = 500
)
