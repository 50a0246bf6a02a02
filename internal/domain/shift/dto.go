package shift

import (
	"github.com/hadirin/absensi-backend-go/internal/pkg/validator"
)

type UpdatePolicyRequest struct {
	StartTime     string  `json:"start_time"` // HH:MM or HH:MM:SS
	GraceMinutes  int     `json:"grace_minutes"`
	StandardHours float64 `json:"standard_hours"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidClockTime(r.StartTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if r.StandardHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_hours",
			Message: "standard_hours must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PolicyResponse struct {
	StartTime     string  `json:"start_time"`
	GraceMinutes  int     `json:"grace_minutes"`
	StandardHours float64 `json:"standard_hours"`
	UpdatedAt     string  `json:"updated_at"`
}
