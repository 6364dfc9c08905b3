package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/seedroom/internal/api/middleware"
	"github.com/mcoot/seedroom/internal/api/request"
	"github.com/mcoot/seedroom/internal/api/response"
	"github.com/mcoot/seedroom/internal/services/identity"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	identities *identity.Registry
	logger     *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(identities *identity.Registry, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		identities: identities,
		logger:     logger,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.NameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.identities.Issue(r.Context(), req.Name)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TokenResponse{
		Player: response.PlayerFromModel(player),
		Token:  string(player.Token),
	})
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(*player))
}

// Rename handles PATCH /api/v1/players/me
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.NameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	renamed, err := h.identities.Rename(r.Context(), player.Token, req.Name)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(renamed))
}
