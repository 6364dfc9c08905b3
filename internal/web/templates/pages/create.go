package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/web/templates/layout"
)

// CreateData is the data for the room creation form
type CreateData struct {
	layout.PageData
	Catalogue []model.Category
	Form      model.SettingsForm
	Error     string
}

// Create renders the settings form
func Create(data CreateData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Create a room</h1>`)
		layout.Error(hw, data.Error)
		hw.Raw(`<form method="post" action="/create" id="create-form">`)
		layout.CSRFField(hw, data.CSRFToken)

		selected := map[string]string{
			"difficulty": data.Form.Difficulty,
			"goal":       data.Form.Goal,
			"logic":      data.Form.Logic,
			"mode":       data.Form.Mode,
			"variation":  data.Form.Variation,
			"weapons":    data.Form.Weapons,
		}
		for _, cat := range data.Catalogue {
			hw.Raw(`<label>`)
			hw.Text(cat.Field)
			hw.Raw(` <select name="`)
			hw.Text(cat.Field)
			hw.Raw(`">`)
			for _, opt := range cat.Options {
				hw.Raw(`<option value="`)
				hw.Text(opt.Key)
				hw.Raw(`"`)
				if opt.Key == selected[cat.Field] {
					hw.Raw(` selected`)
				}
				hw.Raw(`>`)
				hw.Text(opt.Description)
				hw.Raw(`</option>`)
			}
			hw.Raw(`</select></label>`)
		}

		checkbox(hw, "enemizer", "Enemizer", data.Form.Enemizer)
		checkbox(hw, "spoilers", "Spoilers", data.Form.Spoilers)
		checkbox(hw, "tournament", "Tournament", data.Form.Tournament)

		hw.Raw(`<label>Language <input type="text" name="lang" value="`)
		hw.Text(data.Form.Lang)
		hw.Raw(`"></label><button type="submit">Generate seed</button></form>`)
		return hw.Err()
	}))
}

func checkbox(hw *layout.Writer, name, label string, checked bool) {
	hw.Raw(`<label><input type="checkbox" name="`)
	hw.Text(name)
	hw.Raw(`" value="1"`)
	if checked {
		hw.Raw(` checked`)
	}
	hw.Raw(`> `)
	hw.Text(label)
	hw.Raw(`</label>`)
}
