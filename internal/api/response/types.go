package response

import (
	"time"

	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/rooms"
)

// NameFunc resolves a player token to its display name for presentation
type NameFunc func(model.PlayerToken) string

// Player represents a player in API responses
type Player struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// TokenResponse is returned when a new identity is issued
type TokenResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// Settings represents validated room settings
type Settings struct {
	Difficulty string `json:"difficulty"`
	Goal       string `json:"goal"`
	Logic      string `json:"logic"`
	Mode       string `json:"mode"`
	Variation  string `json:"variation"`
	Weapons    string `json:"weapons"`
	Enemizer   bool   `json:"enemizer"`
	Spoilers   bool   `json:"spoilers"`
	Tournament bool   `json:"tournament"`
	Lang       string `json:"lang"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		Difficulty: string(s.Difficulty),
		Goal:       string(s.Goal),
		Logic:      string(s.Logic),
		Mode:       string(s.Mode),
		Variation:  string(s.Variation),
		Weapons:    string(s.Weapons),
		Enemizer:   s.Enemizer,
		Spoilers:   s.Spoilers,
		Tournament: s.Tournament,
		Lang:       s.Lang,
	}
}

// Option is one selectable settings value
type Option struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// Category lists the options of one settings field
type Category struct {
	Field   string   `json:"field"`
	Options []Option `json:"options"`
}

// CatalogueResponse is the response for GET /settings
type CatalogueResponse struct {
	Categories []Category     `json:"categories"`
	Defaults   map[string]any `json:"defaults"`
}

// CatalogueFromModel converts the settings catalogue
func CatalogueFromModel(cats []model.Category, defaults model.SettingsForm) CatalogueResponse {
	out := make([]Category, len(cats))
	for i, c := range cats {
		opts := make([]Option, len(c.Options))
		for j, o := range c.Options {
			opts[j] = Option{Key: o.Key, Description: o.Description}
		}
		out[i] = Category{Field: c.Field, Options: opts}
	}
	return CatalogueResponse{
		Categories: out,
		Defaults: map[string]any{
			"difficulty": defaults.Difficulty,
			"goal":       defaults.Goal,
			"logic":      defaults.Logic,
			"mode":       defaults.Mode,
			"variation":  defaults.Variation,
			"weapons":    defaults.Weapons,
			"enemizer":   defaults.Enemizer,
			"spoilers":   defaults.Spoilers,
			"tournament": defaults.Tournament,
			"lang":       defaults.Lang,
		},
	}
}

// Seed represents the generated seed of a room
type Seed struct {
	Hash      string `json:"hash"`
	Permalink string `json:"permalink"`
}

// Chat represents the chat channel of a room
type Chat struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Countdown represents remaining time split for display
type Countdown struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Member represents a room member
type Member struct {
	Name          string    `json:"name"`
	IsCreator     bool      `json:"is_creator"`
	IsYou         bool      `json:"is_you"`
	JoinedAt      time.Time `json:"joined_at"`
	FinishSeconds *int64    `json:"finish_seconds,omitempty"`
	FinishTime    string    `json:"finish_time,omitempty"`
}

// Room represents a room in API responses
type Room struct {
	ID        string    `json:"id"`
	Settings  Settings  `json:"settings"`
	Seed      Seed      `json:"seed"`
	Chat      Chat      `json:"chat"`
	Creator   string    `json:"creator"`
	IsCreator bool      `json:"is_creator"`
	IsMember  bool      `json:"is_member"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Remaining Countdown `json:"remaining"`
}

// RoomFromModel converts a model.Room as seen by viewer at now
func RoomFromModel(r *model.Room, viewer model.PlayerToken, now time.Time, names NameFunc) Room {
	members := r.Members()
	out := Room{
		ID:        string(r.ID),
		Settings:  SettingsFromModel(r.Settings),
		Seed:      Seed{Hash: r.Seed.Hash, Permalink: r.Seed.Permalink},
		Chat:      Chat{Name: r.Chat.Name, URL: r.Chat.URL},
		Creator:   names(r.Creator),
		IsCreator: r.IsCreator(viewer),
		Members:   make([]Member, 0, len(members)),
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
	for _, m := range members {
		member := Member{
			Name:      names(m.Token),
			IsCreator: m.Token == r.Creator,
			IsYou:     m.Token == viewer,
			JoinedAt:  m.JoinedAt,
		}
		if m.FinishTime != nil {
			secs := int64(*m.FinishTime / time.Second)
			member.FinishSeconds = &secs
			member.FinishTime = model.FormatFinish(*m.FinishTime)
		}
		if member.IsYou {
			out.IsMember = true
		}
		out.Members = append(out.Members, member)
	}
	c := r.Countdown(now)
	out.Remaining = Countdown{Hours: c.Hours, Minutes: c.Minutes, Seconds: c.Seconds}
	return out
}

// RoomListResponse is the response for GET /rooms
type RoomListResponse struct {
	Rooms []Room `json:"rooms"`
}

// Stats represents registry statistics
type Stats struct {
	Rooms    int `json:"rooms"`
	Reserved int `json:"reserved"`
	Capacity int `json:"capacity"`
	Players  int `json:"players"`
}

// StatsFromModel converts registry stats
func StatsFromModel(s rooms.Stats, players int) Stats {
	return Stats{
		Rooms:    s.Rooms,
		Reserved: s.Reserved,
		Capacity: s.Capacity,
		Players:  players,
	}
}
