package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/web/templates/layout"
)

// HomeData is the data for the name page
type HomeData struct {
	layout.PageData
	Next  string
	Name  string
	Error string
}

// Home renders the page where a player picks or changes their name
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		if data.Player != nil {
			hw.Raw(`<h1>Change your name</h1>`)
		} else {
			hw.Raw(`<h1>Choose a name</h1>`)
		}
		layout.Error(hw, data.Error)
		hw.Raw(`<form method="post" action="/name" id="name-form">`)
		layout.CSRFField(hw, data.CSRFToken)
		hw.Raw(`<input type="hidden" name="next" value="`)
		hw.Text(data.Next)
		hw.Raw(`"><input type="text" name="name" required maxlength="` + strconv.Itoa(model.MaxNameLength) + `" value="`)
		hw.Text(data.Name)
		hw.Raw(`"><button type="submit">Save</button></form>`)
		return hw.Err()
	}))
}
