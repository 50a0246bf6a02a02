package jwt

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

var ErrNoAuthenticatedUser = errors.New("no authenticated user in context")

// UserIDFromContext extracts the user_id claim placed by the jwtauth
// verifier middleware.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", ErrNoAuthenticatedUser
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrNoAuthenticatedUser
	}

	return userID, nil
}

// RoleFromContext extracts the role claim placed by the jwtauth verifier
// middleware. Returns an empty string when absent.
func RoleFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}

	role, _ := claims["role"].(string)
	return role
}
