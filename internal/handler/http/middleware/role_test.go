package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleContext(t *testing.T, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": "user-1",
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func serveWithRole(t *testing.T, mw func(http.Handler) http.Handler, role string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(roleContext(t, role))
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)
	return rr
}

func TestRequirePermissionDeniesKaryawan(t *testing.T) {
	rr := serveWithRole(t, RequirePermission(user.PermissionViewAllRecords), "karyawan")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "insufficient permissions")
}

func TestRequirePermissionAllowsKepalaViewAll(t *testing.T) {
	rr := serveWithRole(t, RequirePermission(user.PermissionViewAllRecords), "kepala")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequirePermissionManageSettingsIsAdminOnly(t *testing.T) {
	denied := serveWithRole(t, RequirePermission(user.PermissionManageSettings), "kepala")
	allowed := serveWithRole(t, RequirePermission(user.PermissionManageSettings), "admin")

	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Equal(t, http.StatusOK, allowed.Code)
}
