package handlers

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkswipe/backend/internal/models"
)

// LegalHandler serves the embedded legal documents rendered in the gallery
// modals.
type LegalHandler struct {
	docs fs.FS
}

var legalDocs = map[string]string{
	"terms":      "terms.html",
	"privacy":    "privacy.html",
	"disclaimer": "disclaimer.html",
}

func NewLegalHandler(docs fs.FS) *LegalHandler {
	return &LegalHandler{docs: docs}
}

func (h *LegalHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	name, ok := legalDocs[chi.URLParam(r, "doc")]
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Unknown legal document"))
		return
	}

	body, err := fs.ReadFile(h.docs, name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load document"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
