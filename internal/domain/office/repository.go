package office

import "context"

// LocationRepository stores the singleton office location.
type LocationRepository interface {
	// Get returns the configured office location, or ErrNotConfigured.
	Get(ctx context.Context) (Location, error)

	// Upsert creates or replaces the office location.
	Upsert(ctx context.Context, loc Location) (Location, error)
}
