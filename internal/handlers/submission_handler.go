package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

type SubmissionHandler struct {
	profiles       services.ProfileStore
	photos         services.PhotoStore
	mailer         *services.SendGridMailer
	allowedDomains []string
	paymentPageURL string
	maxSizeMB      int64
}

func NewSubmissionHandler(profiles services.ProfileStore, photos services.PhotoStore, mailer *services.SendGridMailer, allowedDomains []string, paymentPageURL string, maxSizeMB int64) *SubmissionHandler {
	return &SubmissionHandler{
		profiles:       profiles,
		photos:         photos,
		mailer:         mailer,
		allowedDomains: allowedDomains,
		paymentPageURL: paymentPageURL,
		maxSizeMB:      maxSizeMB,
	}
}

// SubmitProfile accepts the multipart submission form, uploads the photo and
// inserts a pending_payment record. The photo upload happens first: on upload
// failure nothing is written to the database. The reverse is not compensated,
// so a failed insert after a successful upload leaves an orphaned blob.
func (h *SubmissionHandler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	// Limit request body size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxSizeMB * 1024 * 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	description := strings.TrimSpace(r.FormValue("description"))
	link := strings.TrimSpace(r.FormValue("link"))
	platform := strings.TrimSpace(r.FormValue("platform"))

	missing := map[string]string{}
	for field, value := range map[string]string{
		"name":        name,
		"email":       email,
		"description": description,
		"link":        link,
		"platform":    platform,
	} {
		if value == "" {
			missing[field] = "required"
		}
	}

	file, header, err := r.FormFile("photoFile")
	if err != nil {
		missing["photoFile"] = "required"
	} else {
		defer file.Close()
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(missing))
		return
	}

	switch validateLink(link, h.allowedDomains) {
	case nil:
	case ErrDisallowedPlatform:
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Link must point to an allowed social platform"))
		return
	default:
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Link must be a valid http(s) URL"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image type. Allowed: JPEG, PNG, GIF, WebP"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	photoURL, err := h.photos.Upload(ctx, header.Filename, contentType, file)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("photo upload failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to upload photo"))
		return
	}

	profile := &models.Profile{
		Name:        name,
		Description: description,
		Link:        link,
		Platform:    platform,
		Email:       email,
		PhotoURL:    photoURL,
		Status:      models.StatusPendingPayment,
		Timestamp:   time.Now(),
	}

	id, err := h.profiles.Create(ctx, profile)
	if err != nil {
		// The uploaded photo is now orphaned; accepted, not compensated.
		log.Error().Err(err).Str("email", email).Msg("profile insert failed after upload")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save profile"))
		return
	}

	log.Info().Str("id", id).Str("email", email).Str("platform", platform).Msg("profile submitted, awaiting payment")

	if h.mailer.Enabled() {
		go func() {
			// Detached from the request context: the response does not wait on mail.
			ctx, cancel := contextWithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.mailer.SendPaymentInstructions(ctx, email, name, h.paymentPageURL); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("payment instructions mail failed")
			}
		}()
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.SubmissionResponse{
		Message:    "Profile submitted successfully!",
		PaymentURL: h.paymentPageURL,
	}))
}
