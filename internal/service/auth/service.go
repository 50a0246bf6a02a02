package auth

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirin/absensi-backend-go/internal/domain/auth"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users user.UserRepository
	jwt   jwt.Service
}

func NewAuthService(users user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &authService{users: users, jwt: jwtService}
}

// Login implements auth.AuthService. Unknown email and wrong password
// produce the same error so the endpoint does not leak which emails exist.
func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	refreshToken, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		User: auth.UserResponse{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       string(u.Role),
			Department: u.Department,
		},
	}, nil
}

// Refresh implements auth.AuthService.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if refreshToken == "" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if s.jwt.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrTokenRevoked
	}

	userID, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return auth.RefreshResponse{}, auth.ErrTokenExpired
		}
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return auth.RefreshResponse{}, err
	}
	if !u.IsActive {
		return auth.RefreshResponse{}, user.ErrUserInactive
	}

	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExp,
	}, nil
}

// Logout implements auth.AuthService. Revocation is in-memory; restarting
// the server naturally invalidates nothing beyond token expiry.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	s.jwt.RevokeToken(refreshToken)
	return nil
}
