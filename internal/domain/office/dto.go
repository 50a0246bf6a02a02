package office

import (
	"fmt"

	"github.com/hadirin/absensi-backend-go/internal/pkg/validator"
)

type UpdateLocationRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
	RadiusMeters int     `json:"radius_meters"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if r.RadiusMeters < MinRadiusMeters || r.RadiusMeters > MaxRadiusMeters {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: fmt.Sprintf("radius_meters must be between %d and %d", MinRadiusMeters, MaxRadiusMeters),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LocationResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
	RadiusMeters int     `json:"radius_meters"`
	UpdatedAt    string  `json:"updated_at"`
}
