package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkswipe/backend/internal/middleware"
	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

const (
	adminEmail    = "admin@linkswipe.app"
	adminPassword = "correct horse battery staple"
	jwtSecret     = "test-secret"
)

func newAdminRouter(t *testing.T, store services.ProfileStore) *chi.Mux {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	h := NewAdminHandler(store, nil, nil, adminEmail, string(hash), jwtSecret, time.Hour)

	r := chi.NewRouter()
	r.Post("/api/admin/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))
		r.Get("/api/admin/profiles", h.ListProfiles)
		r.Post("/api/admin/profiles/{profileId}/approve", h.ApproveProfile)
		r.Delete("/api/admin/profiles/{profileId}", h.DeleteProfile)
	})
	return r
}

func adminLogin(t *testing.T, r http.Handler, email, password string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp.Data["token"]
}

func TestAdminLogin(t *testing.T) {
	r := newAdminRouter(t, services.NewProfileService())

	rec, token := adminLogin(t, r, adminEmail, adminPassword)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, token)

	rec, _ = adminLogin(t, r, adminEmail, "wrong password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = adminLogin(t, r, "someone@else.com", adminPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newAdminRouter(t, services.NewProfileService())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/profiles", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminApproveAndDelete(t *testing.T) {
	store := services.NewProfileService()
	id, err := store.Create(context.Background(), &models.Profile{
		Name:  "Pending",
		Email: "p@example.com",
	})
	require.NoError(t, err)

	r := newAdminRouter(t, store)
	_, token := adminLogin(t, r, adminEmail, adminPassword)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/profiles/"+id+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	approved, _ := store.ListByStatus(context.Background(), models.StatusApproved)
	require.Len(t, approved, 1)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/profiles/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	approved, _ = store.ListByStatus(context.Background(), models.StatusApproved)
	assert.Empty(t, approved)

	// Unknown id
	req = httptest.NewRequest(http.MethodPost, "/api/admin/profiles/unknown/approve", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
