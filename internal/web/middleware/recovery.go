package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/middleware"
	"github.com/mcoot/seedroom/internal/web/templates/layout"
)

// Recovery creates panic recovery middleware for the web interface.
// The visitor gets the site's error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Internal Server Error</h1><p>Something went wrong. Please try again later.</p><p><a href="/">Return to home</a></p>`)
		return hw.Err()
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = layout.Base(layout.PageData{Title: "Error"}, body).Render(r.Context(), w)
}
