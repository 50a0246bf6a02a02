package auth

import (
	"context"
	"testing"

	"github.com/hadirin/absensi-backend-go/internal/domain/auth"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	users map[string]user.User // keyed by both ID and email
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) ListActive(ctx context.Context) ([]user.User, error) {
	return nil, nil
}

func testUser(t *testing.T) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:           "user-1",
		Name:         "Budi Santoso",
		Email:        "budi@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleKaryawan,
		Department:   "Engineering",
		IsActive:     true,
	}
}

func newTestAuth(t *testing.T, refreshExpiration string) (auth.AuthService, jwt.Service) {
	t.Helper()
	u := testUser(t)
	repo := &fakeUsers{users: map[string]user.User{u.ID: u, u.Email: u}}
	jwtService := jwt.NewJWTService("test-secret", "15m", refreshExpiration)
	return NewAuthService(repo, jwtService), jwtService
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuth(t, "720h")

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "karyawan", resp.User.Role)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, _ := newTestAuth(t, "720h")

	_, unknownErr := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "tamu@example.com",
		Password: "rahasia123",
	})
	_, wrongErr := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@example.com",
		Password: "salah",
	})

	assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)
}

func TestRefreshExpiredToken(t *testing.T) {
	// Refresh tokens minted with a negative lifetime are already expired.
	svc, jwtService := newTestAuth(t, "-1h")

	token, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestRefreshRevokedToken(t *testing.T) {
	svc, jwtService := newTestAuth(t, "720h")

	token, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	jwtService.RevokeToken(token)

	_, err = svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRefreshMalformedToken(t *testing.T) {
	svc, _ := newTestAuth(t, "720h")

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshSuccess(t *testing.T) {
	svc, jwtService := newTestAuth(t, "720h")

	token, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}
