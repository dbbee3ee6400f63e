package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/farmtrace/internal/config"
	"github.com/agritrace/farmtrace/internal/model"
	"github.com/agritrace/farmtrace/internal/report"
	"github.com/agritrace/farmtrace/internal/store"
)

func doAdmin(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedUser(t *testing.T, st *store.MemoryStore, username string, role model.Role) *model.User {
	t.Helper()
	u, err := st.CreateUser(context.Background(), model.InsertUser{
		Username: username,
		Password: "hashed-elsewhere",
		FullName: "Test User",
		Role:     role,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func TestAdmin_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doAdmin(t, router, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doAdmin(t, router, http.MethodGet, "/api/admin/users", "wrong-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doAdmin(t, router, http.MethodGet, "/api/admin/users", "test-token", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmin_NoTokenConfiguredClosesSurface(t *testing.T) {
	srv := New(store.NewMemory(), config.ServerConfig{CORSOrigins: []string{"*"}})
	rec := doAdmin(t, srv.Router(), http.MethodGet, "/api/admin/users", "anything", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_ListUsersStripsPasswords(t *testing.T) {
	srv, st := newTestServer(t)
	seedUser(t, st, "alice", model.RoleFarmer)

	rec := doAdmin(t, srv.Router(), http.MethodGet, "/api/admin/users", "test-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hashed-elsewhere")
	assert.NotContains(t, rec.Body.String(), "password")

	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestAdmin_UpdateUserRole(t *testing.T) {
	srv, st := newTestServer(t)
	u := seedUser(t, st, "bob", model.RoleFarmer)
	router := srv.Router()

	rec := doAdmin(t, router, http.MethodPatch, "/api/admin/users/"+u.ID+"/role", "test-token",
		map[string]string{"role": "inspector"})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := st.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleInspector, got.Role)
}

func TestAdmin_UpdateUserRole_InvalidRole(t *testing.T) {
	srv, st := newTestServer(t)
	u := seedUser(t, st, "carol", model.RoleFarmer)

	rec := doAdmin(t, srv.Router(), http.MethodPatch, "/api/admin/users/"+u.ID+"/role", "test-token",
		map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_UpdateUserRole_UnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doAdmin(t, srv.Router(), http.MethodPatch, "/api/admin/users/nope/role", "test-token",
		map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_SystemStats(t *testing.T) {
	srv, st := newTestServer(t)
	seedUser(t, st, "alice", model.RoleFarmer)
	seedUser(t, st, "bob", model.RoleInspector)
	seedUser(t, st, "root", model.RoleAdmin)
	farm := seedFarm(t, st)
	animal := seedAnimal(t, st, farm.ID)
	seedTreatments(t, st, farm.ID, animal.ID)

	rec := doAdmin(t, srv.Router(), http.MethodGet, "/api/admin/system-stats", "test-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats report.SystemStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalFarms)
	assert.Equal(t, 1, stats.TotalAnimals)
	assert.Equal(t, 4, stats.TotalTreatments)
	assert.Equal(t, 1, stats.ActiveViolations)
	assert.Equal(t, 1, stats.ActiveWarnings)
	assert.Equal(t, report.RoleCounts{Farmers: 1, Inspectors: 1, Admins: 1}, stats.UsersByRole)
}

func TestAdmin_Metrics(t *testing.T) {
	srv, st := newTestServer(t)
	farm := seedFarm(t, st)
	animal := seedAnimal(t, st, farm.ID)
	seedTreatments(t, st, farm.ID, animal.ID)

	rec := doAdmin(t, srv.Router(), http.MethodGet, "/api/admin/metrics", "test-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap struct {
		TotalTreatments int `json:"total_treatments"`
		Violations      int `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 4, snap.TotalTreatments)
	assert.Equal(t, 1, snap.Violations)
}
