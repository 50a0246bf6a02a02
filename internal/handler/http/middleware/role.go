package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/hadirin/absensi-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		if user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireKepala requires the kepala or admin role
func RequireKepala(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrKepalaAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrKepalaAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleKepala && role != user.RoleAdmin {
			response.HandleError(w, user.ErrKepalaAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, fmt.Errorf("%w: required '%s'", user.ErrPermissionDenied, permission))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, fmt.Errorf("%w: required '%s'", user.ErrPermissionDenied, permission))
				return
			}

			role := user.Role(roleStr)
			if !user.HasPermission(role, permission) {
				response.HandleError(w, fmt.Errorf("%w: required '%s', but user role is '%s'", user.ErrPermissionDenied, permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
