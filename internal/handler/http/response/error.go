package response

import (
	"errors"
	"net/http"

	"github.com/hadirin/absensi-backend-go/internal/domain/auth"
	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/report"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/hadirin/absensi-backend-go/internal/pkg/geo"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
	"github.com/hadirin/absensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, jwt.ErrNoAuthenticatedUser):
		Unauthorized(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrKepalaAccessRequired),
		errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, geo.ErrMissingCoordinates):
		BadRequest(w, "Latitude and longitude are required", nil)

	// Compliance settings missing; checks fail closed until configured
	case errors.Is(err, office.ErrNotConfigured):
		Conflict(w, "Office location is not configured")
	case errors.Is(err, shift.ErrNotConfigured):
		Conflict(w, "Shift policy is not configured")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, report.ErrInvalidAudience):
		BadRequest(w, "Unknown report audience", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
