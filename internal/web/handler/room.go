package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/rooms"
	"github.com/mcoot/seedroom/internal/web/middleware"
	"github.com/mcoot/seedroom/internal/web/templates/pages"
)

// RoomHandler handles room pages and actions
type RoomHandler struct {
	rooms      *rooms.Registry
	identities *identity.Registry
	clock      clock.Clock
	logger     *slog.Logger
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(rooms *rooms.Registry, identities *identity.Registry, clock clock.Clock, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:      rooms,
		identities: identities,
		clock:      clock,
		logger:     logger,
	}
}

// List renders open rooms, newest first
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	list := h.rooms.List()

	data := pages.RoomsData{
		PageData: pageData(r, "Rooms"),
		Rooms:    make([]pages.RoomSummary, 0, len(list)),
	}
	for _, room := range list {
		data.Rooms = append(data.Rooms, pages.RoomSummary{
			ID:        string(room.ID),
			Creator:   h.name(room.Creator),
			Goal:      room.Settings.Goal.Description(),
			Mode:      room.Settings.Mode.Description(),
			Players:   room.MemberCount(),
			Remaining: room.Countdown(now).String(),
		})
	}
	render(w, r, http.StatusOK, pages.Rooms(data))
}

// CreateForm renders the settings form with defaults selected
func (h *RoomHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderCreate(w, r, http.StatusOK, model.DefaultSettingsForm(), "")
}

// Create validates the submitted settings and opens a room for them
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	form := settingsForm(r)

	settings, err := model.ParseSettings(form)
	if err != nil {
		h.renderCreate(w, r, http.StatusBadRequest, form, h.userMessage(err))
		return
	}

	room, err := h.rooms.Create(r.Context(), settings, player.Token)
	if err != nil {
		status := http.StatusServiceUnavailable
		if model.IsValidationError(err) || errors.Is(err, model.ErrRoomExists) {
			status = http.StatusBadRequest
		}
		h.renderCreate(w, r, status, form, h.userMessage(err))
		return
	}

	middleware.SetFlash(w, "success", "Room created!")
	http.Redirect(w, r, "/room/"+string(room.ID), http.StatusSeeOther)
}

// View shows a room, joining the viewer to it
func (h *RoomHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	id := roomID(r)

	room, err := h.rooms.Join(r.Context(), id, player.Token)
	if err != nil {
		data := pages.RoomData{PageData: pageData(r, "Room"), ID: string(id)}
		status := http.StatusNotFound
		if errors.Is(err, model.ErrRoomNotFound) {
			data.Error = "Room does not exist."
		} else {
			status = http.StatusInternalServerError
			data.Error = h.userMessage(err)
		}
		render(w, r, status, pages.Room(data))
		return
	}

	render(w, r, http.StatusOK, pages.Room(h.roomData(r, room, player.Token)))
}

// Leave removes the player from the room
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	if err := h.rooms.Leave(r.Context(), roomID(r), player.Token); err != nil && !errors.Is(err, model.ErrRoomNotFound) {
		middleware.SetFlash(w, "error", h.userMessage(err))
	} else {
		middleware.SetFlash(w, "info", "You left the room.")
	}
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}

// Remove deletes the room when the player created it
func (h *RoomHandler) Remove(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	id := roomID(r)

	if err := h.rooms.RemoveAs(r.Context(), id, player.Token); err != nil {
		middleware.SetFlash(w, "error", h.userMessage(err))
		if errors.Is(err, model.ErrNotCreator) {
			http.Redirect(w, r, "/room/"+string(id), http.StatusSeeOther)
			return
		}
	} else {
		middleware.SetFlash(w, "success", "Room removed.")
	}
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}

// Time records the player's finishing time
func (h *RoomHandler) Time(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	id := roomID(r)

	finish, err := finishTime(r)
	if err == nil {
		_, err = h.rooms.RecordTime(r.Context(), id, player.Token, finish)
	}
	if err != nil {
		middleware.SetFlash(w, "error", h.userMessage(err))
	} else {
		middleware.SetFlash(w, "success", "Time saved.")
	}
	http.Redirect(w, r, "/room/"+string(id), http.StatusSeeOther)
}

func (h *RoomHandler) renderCreate(w http.ResponseWriter, r *http.Request, status int, form model.SettingsForm, msg string) {
	render(w, r, status, pages.Create(pages.CreateData{
		PageData:  pageData(r, "Create"),
		Catalogue: model.SettingsCatalogue(),
		Form:      form,
		Error:     msg,
	}))
}

func (h *RoomHandler) roomData(r *http.Request, room *model.Room, viewer model.PlayerToken) pages.RoomData {
	s := room.Settings
	data := pages.RoomData{
		PageData:  pageData(r, string(room.ID)),
		ID:        string(room.ID),
		Hash:      room.Seed.Hash,
		Permalink: room.Seed.Permalink,
		Remaining: room.Countdown(h.clock.Now()).String(),
		ChatName:  room.Chat.Name,
		ChatURL:   room.Chat.URL,
		IsCreator: room.IsCreator(viewer),
		Settings: []pages.SettingRow{
			{Label: "Difficulty", Value: s.Difficulty.Description()},
			{Label: "Goal", Value: s.Goal.Description()},
			{Label: "Logic", Value: s.Logic.Description()},
			{Label: "Mode", Value: s.Mode.Description()},
			{Label: "Variation", Value: s.Variation.Description()},
			{Label: "Weapons", Value: s.Weapons.Description()},
			{Label: "Enemizer", Value: onOff(s.Enemizer)},
			{Label: "Spoilers", Value: onOff(s.Spoilers)},
			{Label: "Tournament", Value: onOff(s.Tournament)},
			{Label: "Language", Value: s.Lang},
		},
	}
	for _, m := range room.Members() {
		row := pages.MemberRow{
			Name:      h.name(m.Token),
			IsCreator: m.Token == room.Creator,
			IsYou:     m.Token == viewer,
		}
		if m.FinishTime != nil {
			row.Finish = model.FormatFinish(*m.FinishTime)
		}
		data.Members = append(data.Members, row)
	}
	return data
}

func (h *RoomHandler) name(token model.PlayerToken) string {
	p, err := h.identities.Get(token)
	if err != nil {
		return "unknown"
	}
	return p.Name
}

// userMessage turns an error into something safe to show a visitor
func (h *RoomHandler) userMessage(err error) string {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, model.ErrRoomNotFound):
		return "Room does not exist."
	case errors.Is(err, model.ErrRoomExists):
		return "A room for this seed already exists."
	case errors.Is(err, model.ErrCapacityExceeded):
		return "Too many rooms are open right now, try again later."
	case errors.Is(err, model.ErrSeedUnavailable):
		return "Seed generation failed, try again later."
	case errors.Is(err, model.ErrNotCreator):
		return "Only the room creator can remove it."
	case errors.Is(err, model.ErrNotInRoom):
		return "You are not in this room."
	default:
		h.logger.Error("room action failed", slog.String("error", err.Error()))
		return "Something went wrong, try again."
	}
}

func settingsForm(r *http.Request) model.SettingsForm {
	return model.SettingsForm{
		Difficulty: r.PostFormValue("difficulty"),
		Goal:       r.PostFormValue("goal"),
		Logic:      r.PostFormValue("logic"),
		Mode:       r.PostFormValue("mode"),
		Variation:  r.PostFormValue("variation"),
		Weapons:    r.PostFormValue("weapons"),
		Enemizer:   r.PostFormValue("enemizer") != "",
		Spoilers:   r.PostFormValue("spoilers") != "",
		Tournament: r.PostFormValue("tournament") != "",
		Lang:       strings.TrimSpace(r.PostFormValue("lang")),
	}
}

// finishTime reads the hours/minutes/seconds fields; blanks count as zero
func finishTime(r *http.Request) (d time.Duration, err error) {
	var parts [3]int
	for i, field := range []string{"hours", "minutes", "seconds"} {
		raw := strings.TrimSpace(r.PostFormValue(field))
		if raw == "" {
			continue
		}
		if parts[i], err = strconv.Atoi(raw); err != nil {
			return 0, &model.ValidationError{Field: "time", Message: "Time must be whole numbers."}
		}
	}
	return model.ValidateFinishTime(parts[0], parts[1], parts[2])
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func roomID(r *http.Request) model.RoomID {
	return model.RoomID(mux.Vars(r)["id"])
}
