package handler

import (
	"net/http"

	"github.com/mcoot/seedroom/internal/api/response"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/rooms"
)

// InfoHandler serves the read-only informational endpoints
type InfoHandler struct {
	rooms      *rooms.Registry
	identities *identity.Registry
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(rooms *rooms.Registry, identities *identity.Registry) *InfoHandler {
	return &InfoHandler{rooms: rooms, identities: identities}
}

// Health handles GET /api/v1/health
func (h *InfoHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Settings handles GET /api/v1/settings
func (h *InfoHandler) Settings(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.CatalogueFromModel(model.SettingsCatalogue(), model.DefaultSettingsForm()))
}

// Stats handles GET /api/v1/stats
func (h *InfoHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.StatsFromModel(h.rooms.Stats(), h.identities.Count()))
}
