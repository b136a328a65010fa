package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

func TestListApproved_OnlyApprovedProfiles(t *testing.T) {
	store := services.NewProfileService()
	for i := 0; i < 3; i++ {
		_, err := store.Create(context.Background(), &models.Profile{
			Name:   "Approved",
			Email:  "a@example.com",
			Status: models.StatusApproved,
		})
		require.NoError(t, err)
	}
	_, err := store.Create(context.Background(), &models.Profile{
		Name:  "Pending",
		Email: "p@example.com",
	})
	require.NoError(t, err)

	h := NewGalleryHandler(store, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	h.ListApproved(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []models.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 3)
	for _, p := range resp.Data {
		assert.Equal(t, models.StatusApproved, p.Status)
	}
}

func TestListApproved_EmptyDeck(t *testing.T) {
	h := NewGalleryHandler(services.NewProfileService(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	h.ListApproved(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}
