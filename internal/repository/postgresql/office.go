package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.LocationRepository {
	return &officeLocationRepository{db: db}
}

// Get implements office.LocationRepository. The office_locations table holds
// a single row (id = 1).
func (o *officeLocationRepository) Get(ctx context.Context) (office.Location, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT latitude, longitude, address, radius_meters, updated_at
		FROM office_locations
		WHERE id = 1
	`

	var loc office.Location
	err := q.QueryRow(ctx, query).Scan(
		&loc.Latitude, &loc.Longitude, &loc.Address, &loc.RadiusMeters, &loc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Location{}, office.ErrNotConfigured
		}
		return office.Location{}, fmt.Errorf("failed to get office location: %w", err)
	}

	return loc, nil
}

// Upsert implements office.LocationRepository.
func (o *officeLocationRepository) Upsert(ctx context.Context, loc office.Location) (office.Location, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO office_locations (id, latitude, longitude, address, radius_meters, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			address = EXCLUDED.address,
			radius_meters = EXCLUDED.radius_meters,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.Latitude, loc.Longitude, loc.Address, loc.RadiusMeters,
	).Scan(&loc.UpdatedAt)

	if err != nil {
		return office.Location{}, fmt.Errorf("failed to upsert office location: %w", err)
	}

	return loc, nil
}
