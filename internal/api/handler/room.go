package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/seedroom/internal/api/middleware"
	"github.com/mcoot/seedroom/internal/api/request"
	"github.com/mcoot/seedroom/internal/api/response"
	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/rooms"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	rooms      *rooms.Registry
	identities *identity.Registry
	clock      clock.Clock
	logger     *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *rooms.Registry, identities *identity.Registry, clock clock.Clock, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:      rooms,
		identities: identities,
		clock:      clock,
		logger:     logger,
	}
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	now := h.clock.Now()

	list := h.rooms.List()
	resp := response.RoomListResponse{Rooms: make([]response.Room, 0, len(list))}
	for _, room := range list {
		resp.Rooms = append(resp.Rooms, response.RoomFromModel(room, player.Token, now, h.name))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	req := request.NewCreateRoomRequest()
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	settings, err := model.ParseSettings(req.Form())
	if err != nil {
		WriteError(w, err)
		return
	}

	room, err := h.rooms.Create(r.Context(), settings, player.Token)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	h.writeRoom(w, http.StatusCreated, room, player.Token)
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	room, err := h.rooms.Lookup(roomID(r))
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	h.writeRoom(w, http.StatusOK, room, player.Token)
}

// Join handles POST /api/v1/rooms/{id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	room, err := h.rooms.Join(r.Context(), roomID(r), player.Token)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	h.writeRoom(w, http.StatusOK, room, player.Token)
}

// Leave handles POST /api/v1/rooms/{id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.rooms.Leave(r.Context(), roomID(r), player.Token); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	response.NoContent(w)
}

// RecordTime handles PUT /api/v1/rooms/{id}/time
func (h *RoomHandler) RecordTime(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.FinishTimeRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	finish, err := model.ValidateFinishTime(req.Hours, req.Minutes, req.Seconds)
	if err != nil {
		WriteError(w, err)
		return
	}

	room, err := h.rooms.RecordTime(r.Context(), roomID(r), player.Token, finish)
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	h.writeRoom(w, http.StatusOK, room, player.Token)
}

// Delete handles DELETE /api/v1/rooms/{id}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.rooms.RemoveAs(r.Context(), roomID(r), player.Token); err != nil {
		fail(h.logger, w, r, err)
		return
	}

	response.NoContent(w)
}

func (h *RoomHandler) writeRoom(w http.ResponseWriter, status int, room *model.Room, viewer model.PlayerToken) {
	response.JSON(w, status, response.RoomFromModel(room, viewer, h.clock.Now(), h.name))
}

// name looks up a display name without refreshing the player's activity
func (h *RoomHandler) name(token model.PlayerToken) string {
	p, err := h.identities.Get(token)
	if err != nil {
		return "unknown"
	}
	return p.Name
}

func roomID(r *http.Request) model.RoomID {
	return model.RoomID(mux.Vars(r)["id"])
}
