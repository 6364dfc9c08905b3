package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apimw "github.com/mcoot/seedroom/internal/api/middleware"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/web/middleware"
	"github.com/mcoot/seedroom/internal/web/templates/pages"
)

// sessionMaxAge is how long the browser keeps the player token
const sessionMaxAge = 7 * 24 * time.Hour

// HomeHandler handles the name page
type HomeHandler struct {
	identities *identity.Registry
	logger     *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(identities *identity.Registry, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		identities: identities,
		logger:     logger,
	}
}

// Home renders the name form
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: pageData(r, "Home"),
		Next:     r.URL.Query().Get("next"),
	}
	if data.Player != nil {
		data.Name = data.Player.Name
	}
	render(w, r, http.StatusOK, pages.Home(data))
}

// SetName creates a player, or renames the current one, then continues to next
func (h *HomeHandler) SetName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	next := r.PostFormValue("next")
	current := middleware.GetPlayer(r.Context())

	var (
		player model.Player
		err    error
	)
	if current != nil {
		player, err = h.identities.Rename(r.Context(), current.Token, name)
	} else {
		player, err = h.identities.Issue(r.Context(), name)
	}
	if err != nil {
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			h.logger.Error("failed to save name", slog.String("error", err.Error()))
			ve = &model.ValidationError{Message: "Could not save your name, try again."}
		}
		data := pages.HomeData{
			PageData: pageData(r, "Home"),
			Next:     next,
			Name:     name,
			Error:    ve.Message,
		}
		render(w, r, http.StatusOK, pages.Home(data))
		return
	}

	if current == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     apimw.SessionCookie,
			Value:    string(player.Token),
			Path:     "/",
			MaxAge:   int(sessionMaxAge / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		middleware.SetFlash(w, "success", "Welcome, "+player.Name+"!")
	} else {
		middleware.SetFlash(w, "success", "You are now "+player.Name+".")
	}

	http.Redirect(w, r, safeNext(next, "/rooms"), http.StatusSeeOther)
}
