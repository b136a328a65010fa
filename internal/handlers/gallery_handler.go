package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

type GalleryHandler struct {
	profiles  services.ProfileStore
	feedCache *services.FeedCache
}

func NewGalleryHandler(profiles services.ProfileStore, feedCache *services.FeedCache) *GalleryHandler {
	return &GalleryHandler{profiles: profiles, feedCache: feedCache}
}

// ListApproved returns every approved profile. No pagination or ranking; the
// deck order is whatever the store returns.
func (h *GalleryHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached, ok := h.feedCache.Get(ctx); ok {
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(cached))
		return
	}

	profiles, err := h.profiles.ListByStatus(ctx, models.StatusApproved)
	if err != nil {
		log.Error().Err(err).Msg("approved profiles query failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profiles"))
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	h.feedCache.Set(ctx, profiles)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profiles))
}
