package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/web/templates/layout"
)

// MemberRow is one player in a room
type MemberRow struct {
	Name      string
	IsCreator bool
	IsYou     bool
	Finish    string // empty until a time is reported
}

// RoomData is the data for a single room page
type RoomData struct {
	layout.PageData
	ID        string
	Hash      string
	Permalink string
	Settings  []SettingRow
	Members   []MemberRow
	Remaining string
	ChatName  string
	ChatURL   string
	IsCreator bool
	Error     string // set when the room could not be shown
}

// SettingRow is a human-readable settings entry
type SettingRow struct {
	Label string
	Value string
}

// Room renders a room with its seed, players and chat
func Room(data RoomData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		if data.Error != "" {
			layout.Error(hw, data.Error)
			hw.Raw(`<p><a href="/rooms">Back to rooms</a></p>`)
			return hw.Err()
		}

		hw.Raw(`<h1 class="room-id">`)
		hw.Text(data.ID)
		hw.Raw(`</h1><p class="hash">Seed `)
		hw.Text(data.Hash)
		hw.Raw(`</p><p class="remaining">Expires in `)
		hw.Text(data.Remaining)
		hw.Raw(`</p><p><a class="permalink" href="`)
		hw.URL(data.Permalink)
		hw.Raw(`">`)
		hw.Text(data.Permalink)
		hw.Raw(`</a></p>`)

		hw.Raw(`<dl class="settings">`)
		for _, s := range data.Settings {
			hw.Raw(`<dt>`)
			hw.Text(s.Label)
			hw.Raw(`</dt><dd>`)
			hw.Text(s.Value)
			hw.Raw(`</dd>`)
		}
		hw.Raw(`</dl>`)

		hw.Raw(`<table class="members"><thead><tr><th>Player</th><th>Time</th></tr></thead><tbody>`)
		for _, m := range data.Members {
			hw.Raw(`<tr class="member"><td class="name">`)
			hw.Text(m.Name)
			if m.IsCreator {
				hw.Raw(` <span class="badge">creator</span>`)
			}
			if m.IsYou {
				hw.Raw(` <span class="badge">you</span>`)
			}
			hw.Raw(`</td><td class="finish">`)
			if m.Finish == "" {
				hw.Raw(`-`)
			} else {
				hw.Text(m.Finish)
			}
			hw.Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody></table>`)

		timeForm(hw, data)

		hw.Raw(`<form method="post" action="/room/`)
		hw.Text(data.ID)
		hw.Raw(`/leave" id="leave-form">`)
		layout.CSRFField(hw, data.CSRFToken)
		hw.Raw(`<button type="submit">Leave</button></form>`)

		if data.IsCreator {
			hw.Raw(`<form method="post" action="/room/`)
			hw.Text(data.ID)
			hw.Raw(`/remove" id="remove-form">`)
			layout.CSRFField(hw, data.CSRFToken)
			hw.Raw(`<button type="submit">Remove room</button></form>`)
		}

		nickname := ""
		if data.Player != nil {
			nickname = data.Player.Name
		}
		chatEmbed(hw, data.ChatName, nickname)
		hw.Raw(`<p><a class="chat-link" href="`)
		hw.URL(data.ChatURL)
		hw.Raw(`">Open chat</a></p>`)
		return hw.Err()
	}))
}

func timeForm(hw *layout.Writer, data RoomData) {
	hw.Raw(`<form method="post" action="/room/`)
	hw.Text(data.ID)
	hw.Raw(`/time" id="time-form">`)
	layout.CSRFField(hw, data.CSRFToken)
	for _, f := range []struct {
		name string
		max  int
	}{{"hours", 99}, {"minutes", 59}, {"seconds", 59}} {
		hw.Raw(`<input type="number" min="0" max="` + strconv.Itoa(f.max) + `" name="`)
		hw.Text(f.name)
		hw.Raw(`" placeholder="`)
		hw.Text(f.name)
		hw.Raw(`">`)
	}
	hw.Raw(`<button type="submit">Submit time</button></form>`)
}

// chatEmbed renders the tlk.io widget for channel as nickname
func chatEmbed(hw *layout.Writer, channel, nickname string) {
	hw.Raw(`<div id="tlkio" data-channel="`)
	hw.Text(channel)
	hw.Raw(`" data-nickname="`)
	hw.Text(nickname)
	hw.Raw(`" style="width:100%;height:400px;"></div><script async src="https://tlk.io/embed.js" type="text/javascript"></script>`)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
