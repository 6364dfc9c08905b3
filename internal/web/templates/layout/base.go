package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/model"
)

// FlashMessage is a one-shot notice shown on the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData holds what every page needs
type PageData struct {
	Title     string
	Player    *model.Player
	Flash     *FlashMessage
	CSRFToken string
}

// Base wraps body in the site chrome
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		hw.Text(data.Title)
		hw.Raw(` | seedroom</title><link rel="stylesheet" href="/static/style.css"></head><body><nav class="nav"><a href="/" class="brand">seedroom</a> <a href="/rooms">Rooms</a> <a href="/create">Create</a>`)
		if data.Player != nil {
			hw.Raw(` <span class="player-name">`)
			hw.Text(data.Player.Name)
			hw.Raw(`</span>`)
		}
		hw.Raw(`</nav>`)
		if data.Flash != nil {
			hw.Raw(`<div class="flash flash-`)
			hw.Text(data.Flash.Type)
			hw.Raw(`">`)
			hw.Text(data.Flash.Message)
			hw.Raw(`</div>`)
		}
		hw.Raw(`<main>`)
		hw.Component(ctx, body)
		hw.Raw(`</main></body></html>`)
		return hw.Err()
	})
}

// CSRFField renders the hidden form field carrying the request token
func CSRFField(hw *Writer, token string) {
	hw.Raw(`<input type="hidden" name="_csrf_token" value="`)
	hw.Text(token)
	hw.Raw(`">`)
}

// Error renders an error notice when msg is set
func Error(hw *Writer, msg string) {
	if msg == "" {
		return
	}
	hw.Raw(`<p class="error">`)
	hw.Text(msg)
	hw.Raw(`</p>`)
}
