package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/web/templates/layout"
)

// RoomSummary is one row of the room listing
type RoomSummary struct {
	ID        string
	Creator   string
	Goal      string
	Mode      string
	Players   int
	Remaining string
}

// RoomsData is the data for the room listing
type RoomsData struct {
	layout.PageData
	Rooms []RoomSummary
}

// Rooms renders the listing of open rooms, newest first
func Rooms(data RoomsData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Rooms</h1>`)
		if len(data.Rooms) == 0 {
			hw.Raw(`<p class="empty">No rooms are open. <a href="/create">Create one</a>.</p>`)
			return hw.Err()
		}
		hw.Raw(`<table class="rooms"><thead><tr><th>Room</th><th>Creator</th><th>Goal</th><th>Mode</th><th>Players</th><th>Expires in</th></tr></thead><tbody>`)
		for _, r := range data.Rooms {
			hw.Raw(`<tr class="room" data-room-id="`)
			hw.Text(r.ID)
			hw.Raw(`"><td><a href="/room/`)
			hw.Text(r.ID)
			hw.Raw(`">`)
			hw.Text(r.ID)
			hw.Raw(`</a></td><td class="creator">`)
			hw.Text(r.Creator)
			hw.Raw(`</td><td>`)
			hw.Text(r.Goal)
			hw.Raw(`</td><td>`)
			hw.Text(r.Mode)
			hw.Raw(`</td><td class="players">`)
			hw.Text(itoa(r.Players))
			hw.Raw(`</td><td class="remaining">`)
			hw.Text(r.Remaining)
			hw.Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody></table>`)
		return hw.Err()
	}))
}
