package profile

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dotaznik/internal/jwtauth"
	"dotaznik/pkg/testutil"
)

func newTestStack(t *testing.T) *chi.Mux {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("správné-heslo"), bcrypt.MinCost)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwtauth.NewService("test-signing-key", "dotaznik", "dotaznik-admin")
	svc := NewService(NewInMemoryStore(), tokens, string(hash), nil)
	handler := NewHandler(svc, logger, tokens)

	r := chi.NewRouter()
	handler.Register(r)
	return r
}

func loginAsAdmin(t *testing.T, r http.Handler) string {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
		loginRequest{Username: "admin", Password: "správné-heslo"})
	rr := testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	require.NotEmpty(t, resp["accessToken"])
	return resp["accessToken"]
}

func TestLoginEndpoint(t *testing.T) {
	r := newTestStack(t)
	token := loginAsAdmin(t, r)
	assert.NotEmpty(t, token)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
		loginRequest{Username: "admin", Password: "špatně"})
	rr := testutil.DoRequest(r, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileEndpointsRequireToken(t *testing.T) {
	r := newTestStack(t)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/me/profile"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileLifecycleOverHTTP(t *testing.T) {
	r := newTestStack(t)
	token := loginAsAdmin(t, r)

	// No profile saved yet.
	req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/me/profile"), token)
	rr := testutil.DoRequest(r, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, "/me/profile",
		UserProfile{Name: "Správce", Email: "admin@example.cz"}), token)
	rr = testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var saved UserProfile
	testutil.DecodeJSON(t, rr, &saved)
	assert.Equal(t, "admin", saved.UserID)
	assert.Equal(t, "Správce", saved.Name)

	req = testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/me/profile"), token)
	rr = testutil.DoRequest(r, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRoleEndpoints(t *testing.T) {
	r := newTestStack(t)
	token := loginAsAdmin(t, r)

	req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/me/role"), token)
	rr := testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var role map[string]string
	testutil.DecodeJSON(t, rr, &role)
	assert.Equal(t, "admin", role["role"])

	req = testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/me/is-admin"), token)
	rr = testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var isAdmin map[string]bool
	testutil.DecodeJSON(t, rr, &isAdmin)
	assert.True(t, isAdmin["isAdmin"])
}

func TestAssignRoleEndpoint(t *testing.T) {
	r := newTestStack(t)
	token := loginAsAdmin(t, r)

	req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/admin/roles",
		assignRoleRequest{UserID: "user-1", Role: RoleUser}), token)
	rr := testutil.DoRequest(r, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/admin/roles",
		assignRoleRequest{UserID: "user-1", Role: "owner"}), token)
	rr = testutil.DoRequest(r, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
