package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

// WebhookHandler processes Gumroad ping deliveries. Gumroad posts a
// urlencoded form for each sale; the relevant fields are product_id and the
// buyer email, which is the correlation key back to the submitted profile.
type WebhookHandler struct {
	profiles  services.ProfileStore
	feedCache *services.FeedCache
	mailer    *services.SendGridMailer
	productID string
	secret    string
}

func NewWebhookHandler(profiles services.ProfileStore, feedCache *services.FeedCache, mailer *services.SendGridMailer, productID, secret string) *WebhookHandler {
	return &WebhookHandler{
		profiles:  profiles,
		feedCache: feedCache,
		mailer:    mailer,
		productID: productID,
		secret:    secret,
	}
}

func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	// When a shared secret is configured the payload must carry a matching
	// HMAC-SHA256 signature. Without one, anyone knowing the product code
	// and a target email can approve profiles; run with a secret in
	// production.
	if h.secret != "" {
		if !verifySignature(h.secret, rawBody, r.Header.Get("X-Signature")) {
			log.Warn().Msg("webhook signature mismatch")
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid signature"))
			return
		}
	}

	form, err := url.ParseQuery(string(rawBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid form payload"))
		return
	}

	productID := form.Get("product_id")
	email := strings.TrimSpace(form.Get("email"))
	sellerID := form.Get("seller_id")
	testMode := form.Get("test_mode") == "true"

	if productID != h.productID {
		log.Warn().Str("product_id", productID).Msg("webhook for unknown product")
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid product ID"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.ApproveByEmail(ctx, email)
	if errors.Is(err, services.ErrProfileNotFound) {
		// Dropped for good: this handler never retries, redelivery is the
		// provider's responsibility.
		log.Warn().Str("email", email).Msg("webhook matched no profile")
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("profile approval failed")
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Internal Server Error"))
		return
	}

	h.feedCache.Invalidate(ctx)

	log.Info().
		Str("id", prof.ID.Hex()).
		Str("email", email).
		Str("seller_id", sellerID).
		Bool("test_mode", testMode).
		Msg("profile approved")

	if h.mailer.Enabled() {
		name := prof.Name
		go func() {
			ctx, cancel := contextWithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.mailer.SendApprovalNotice(ctx, email, name); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("approval notice mail failed")
			}
		}()
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{
		"message": "Webhook received and processed successfully!",
	}))
}

func verifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(strings.TrimSpace(signature)))
}
