package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case TokenResult:
		o.printTokenResult(v)
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case Catalogue:
		o.printCatalogue(v)
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResult combines player and token
type TokenResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// Settings response type
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

// Countdown response type
type Countdown struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Member response type
type Member struct {
	Name          string    `json:"name"`
	IsCreator     bool      `json:"is_creator"`
	IsYou         bool      `json:"is_you"`
	JoinedAt      time.Time `json:"joined_at"`
	FinishSeconds *int64    `json:"finish_seconds,omitempty"`
	FinishTime    string    `json:"finish_time,omitempty"`
}

// Room response type
type Room struct {
	ID       string   `json:"id"`
	Settings Settings `json:"settings"`
	Seed     struct {
		Hash      string `json:"hash"`
		Permalink string `json:"permalink"`
	} `json:"seed"`
	Chat struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"chat"`
	Creator   string    `json:"creator"`
	IsCreator bool      `json:"is_creator"`
	IsMember  bool      `json:"is_member"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Remaining Countdown `json:"remaining"`
}

// RoomList response type
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// Catalogue response type
type Catalogue struct {
	Categories []struct {
		Field   string `json:"field"`
		Options []struct {
			Key         string `json:"key"`
			Description string `json:"description"`
		} `json:"options"`
	} `json:"categories"`
	Defaults map[string]any `json:"defaults"`
}

// Stats response type
type Stats struct {
	Rooms    int `json:"rooms"`
	Reserved int `json:"reserved"`
	Capacity int `json:"capacity"`
	Players  int `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s\n", p.Name)
}

func (o *Output) printTokenResult(t TokenResult) {
	o.printPlayer(t.Player)
	fmt.Fprintf(o.w, "Token: %s\n", t.Token)
}

func (c Countdown) String() string {
	return fmt.Sprintf("%d hours, %d minutes, %d seconds", c.Hours, c.Minutes, c.Seconds)
}

func (o *Output) printRoom(r Room) {
	fmt.Fprintf(o.w, "Room: %s\n", r.ID)
	fmt.Fprintf(o.w, "Seed: %s\n", r.Seed.Permalink)
	fmt.Fprintf(o.w, "Chat: %s\n", r.Chat.URL)
	fmt.Fprintf(o.w, "Creator: %s\n", r.Creator)
	fmt.Fprintf(o.w, "Expires in: %s\n", r.Remaining)

	s := r.Settings
	fmt.Fprintf(o.w, "Settings: %s/%s/%s/%s/%s/%s lang=%s", s.Difficulty, s.Goal, s.Logic, s.Mode, s.Variation, s.Weapons, s.Lang)
	for _, flag := range []struct {
		name string
		on   bool
	}{{"enemizer", s.Enemizer}, {"spoilers", s.Spoilers}, {"tournament", s.Tournament}} {
		if flag.on {
			fmt.Fprintf(o.w, " +%s", flag.name)
		}
	}
	fmt.Fprintln(o.w)

	fmt.Fprintf(o.w, "Members (%d):\n", len(r.Members))
	for _, m := range r.Members {
		var tags []string
		if m.IsCreator {
			tags = append(tags, "creator")
		}
		if m.IsYou {
			tags = append(tags, "you")
		}
		tagStr := ""
		if len(tags) > 0 {
			tagStr = " [" + strings.Join(tags, ", ") + "]"
		}
		finish := "-"
		if m.FinishTime != "" {
			finish = m.FinishTime
		}
		fmt.Fprintf(o.w, "  - %s%s %s\n", m.Name, tagStr, finish)
	}
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Fprintln(o.w, "No rooms are open")
		return
	}
	for _, r := range l.Rooms {
		fmt.Fprintf(o.w, "%s  by %s  %d players  expires in %s\n", r.ID, r.Creator, len(r.Members), r.Remaining)
	}
}

func (o *Output) printCatalogue(c Catalogue) {
	for _, cat := range c.Categories {
		fmt.Fprintf(o.w, "%s (default %v):\n", cat.Field, c.Defaults[cat.Field])
		for _, opt := range cat.Options {
			fmt.Fprintf(o.w, "  %-20s %s\n", opt.Key, opt.Description)
		}
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Fprintf(o.w, "Rooms: %d/%d (%d being created)\n", s.Rooms, s.Capacity, s.Reserved)
	fmt.Fprintf(o.w, "Players: %d\n", s.Players)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
