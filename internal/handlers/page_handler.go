package handlers

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

// PageHandler renders the embedded gallery page.
type PageHandler struct {
	index *template.Template
}

func NewPageHandler(templates fs.FS) (*PageHandler, error) {
	tpl, err := template.ParseFS(templates, "index.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{index: tpl}, nil
}

func (h *PageHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title string
	}{
		Title: "Link Swipe — Discover Social Profiles",
	}
	if err := h.index.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("index render failed")
	}
}
