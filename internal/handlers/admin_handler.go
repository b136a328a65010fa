package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkswipe/backend/internal/middleware"
	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

// AdminHandler is the review surface for submitted profiles: list by status,
// approve manually, delete. The original app did all of this directly against
// the store console.
type AdminHandler struct {
	profiles      services.ProfileStore
	feedCache     *services.FeedCache
	mailer        *services.SendGridMailer
	adminEmail    string
	passwordHash  string
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAdminHandler(profiles services.ProfileStore, feedCache *services.FeedCache, mailer *services.SendGridMailer, adminEmail, passwordHash, jwtSecret string, jwtExpiration time.Duration) *AdminHandler {
	return &AdminHandler{
		profiles:      profiles,
		feedCache:     feedCache,
		mailer:        mailer,
		adminEmail:    adminEmail,
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if h.adminEmail == "" || h.passwordHash == "" {
		writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Admin access is not configured"))
		return
	}
	if req.Email != h.adminEmail {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid credentials"))
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"exp":   time.Now().Add(h.jwtExpiration).Unix(),
	})
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		log.Error().Err(err).Msg("token signing failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to issue token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"token": signed}))
}

func (h *AdminHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.StatusPendingPayment
	}
	if status != models.StatusPendingPayment && status != models.StatusApproved {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unknown status"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profiles, err := h.profiles.ListByStatus(ctx, status)
	if err != nil {
		log.Error().Err(err).Str("status", status).Msg("profile listing failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profiles"))
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profiles))
}

func (h *AdminHandler) ApproveProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.ApproveByID(ctx, id)
	if errors.Is(err, services.ErrProfileNotFound) {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("manual approval failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to approve profile"))
		return
	}

	h.feedCache.Invalidate(ctx)
	log.Info().Str("id", id).Str("admin", middleware.GetAdminEmail(r.Context())).Msg("profile approved manually")

	if h.mailer.Enabled() && prof.Email != "" {
		email, name := prof.Email, prof.Name
		go func() {
			ctx, cancel := contextWithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.mailer.SendApprovalNotice(ctx, email, name); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("approval notice mail failed")
			}
		}()
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *AdminHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := h.profiles.DeleteByID(ctx, id)
	if errors.Is(err, services.ErrProfileNotFound) {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("profile delete failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete profile"))
		return
	}

	h.feedCache.Invalidate(ctx)
	log.Info().Str("id", id).Str("admin", middleware.GetAdminEmail(r.Context())).Msg("profile deleted")

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Profile deleted successfully"}))
}
