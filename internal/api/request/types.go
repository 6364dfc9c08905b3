package request

import "github.com/mcoot/seedroom/internal/model"

// NameRequest is the request body for creating or renaming a player
type NameRequest struct {
	Name string `json:"name"`
}

// CreateRoomRequest is the request body for creating a room. Omitted fields
// keep the values from NewCreateRoomRequest.
type CreateRoomRequest struct {
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

// NewCreateRoomRequest returns a request pre-filled with the default settings
func NewCreateRoomRequest() CreateRoomRequest {
	f := model.DefaultSettingsForm()
	return CreateRoomRequest{
		Difficulty: f.Difficulty,
		Goal:       f.Goal,
		Logic:      f.Logic,
		Mode:       f.Mode,
		Variation:  f.Variation,
		Weapons:    f.Weapons,
		Enemizer:   f.Enemizer,
		Spoilers:   f.Spoilers,
		Tournament: f.Tournament,
		Lang:       f.Lang,
	}
}

// Form converts the request into an unvalidated settings form
func (r CreateRoomRequest) Form() model.SettingsForm {
	return model.SettingsForm{
		Difficulty: r.Difficulty,
		Goal:       r.Goal,
		Logic:      r.Logic,
		Mode:       r.Mode,
		Variation:  r.Variation,
		Weapons:    r.Weapons,
		Enemizer:   r.Enemizer,
		Spoilers:   r.Spoilers,
		Tournament: r.Tournament,
		Lang:       r.Lang,
	}
}

// FinishTimeRequest is the request body for reporting a finishing time
type FinishTimeRequest struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}
