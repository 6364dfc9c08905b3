package handler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/web/middleware"
	"github.com/mcoot/seedroom/internal/web/templates/layout"
)

func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:     title,
		Player:    middleware.GetPlayer(r.Context()),
		Flash:     middleware.GetFlash(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r.Context()),
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// safeNext only allows redirects to local paths
func safeNext(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return fallback
}
