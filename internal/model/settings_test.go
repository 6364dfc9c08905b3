package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() SettingsForm {
	return SettingsForm{
		Difficulty: "hard",
		Goal:       "triforce-hunt",
		Logic:      "OverworldGlitches",
		Mode:       "inverted",
		Variation:  "key-sanity",
		Weapons:    "swordless",
		Enemizer:   true,
		Spoilers:   false,
		Tournament: true,
		Lang:       "en",
	}
}

func TestParseSettingsAcceptsEveryCombinationOfKnownKeys(t *testing.T) {
	for _, cat := range SettingsCatalogue() {
		for _, opt := range cat.Options {
			form := validForm()
			switch cat.Field {
			case "difficulty":
				form.Difficulty = opt.Key
			case "goal":
				form.Goal = opt.Key
			case "logic":
				form.Logic = opt.Key
			case "mode":
				form.Mode = opt.Key
			case "variation":
				form.Variation = opt.Key
			case "weapons":
				form.Weapons = opt.Key
			}
			_, err := ParseSettings(form)
			assert.NoError(t, err, "%s=%s", cat.Field, opt.Key)
		}
	}
}

func TestParseSettingsKeepsValues(t *testing.T) {
	s, err := ParseSettings(validForm())
	require.NoError(t, err)

	assert.Equal(t, DifficultyHard, s.Difficulty)
	assert.Equal(t, GoalTriforceHunt, s.Goal)
	assert.Equal(t, LogicOverworldGlitches, s.Logic)
	assert.Equal(t, ModeInverted, s.Mode)
	assert.Equal(t, VariationKeysanity, s.Variation)
	assert.Equal(t, WeaponsSwordless, s.Weapons)
	assert.True(t, s.Enemizer)
	assert.False(t, s.Spoilers)
	assert.True(t, s.Tournament)
	assert.Equal(t, "en", s.Lang)
	assert.Equal(t, validForm(), s.Form())
}

func TestParseSettingsReportsTheInvalidField(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*SettingsForm)
	}{
		{"difficulty", func(f *SettingsForm) { f.Difficulty = "nightmare" }},
		{"goal", func(f *SettingsForm) { f.Goal = "" }},
		{"logic", func(f *SettingsForm) { f.Logic = "noglitches" }},
		{"mode", func(f *SettingsForm) { f.Mode = "closed" }},
		{"variation", func(f *SettingsForm) { f.Variation = "keysanity" }},
		{"weapons", func(f *SettingsForm) { f.Weapons = "bow" }},
		{"lang", func(f *SettingsForm) { f.Lang = "not a language" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := ParseSettings(form)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseSettingsReportsFirstInvalidFieldInOrder(t *testing.T) {
	form := validForm()
	form.Weapons = "bow"
	form.Logic = "bad"
	form.Goal = "bad"

	_, err := ParseSettings(form)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "goal", ve.Field)
	assert.Equal(t, "Selected goal does not exist", ve.Message)
}

func TestParseSettingsDefaultsLanguage(t *testing.T) {
	form := validForm()
	form.Lang = ""

	s, err := ParseSettings(form)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, s.Lang)
}

func TestParseSettingsNormalisesLanguageRegion(t *testing.T) {
	form := validForm()
	form.Lang = "fr-CA"

	s, err := ParseSettings(form)
	require.NoError(t, err)
	assert.Equal(t, "fr", s.Lang)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Crowd Control", DifficultyCrowdControl.Description())
	assert.Equal(t, "Master Sword Pedestal", GoalPedestal.Description())
	assert.Equal(t, "Major Glitches", LogicMajorGlitches.Description())
	assert.Equal(t, "Standard", ModeStandard.Description())
	assert.Equal(t, "Keysanity", VariationKeysanity.Description())
	assert.Equal(t, "Uncle Assured", WeaponsUncle.Description())
}

func TestSettingsCatalogueOrder(t *testing.T) {
	var fields []string
	for _, c := range SettingsCatalogue() {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []string{"difficulty", "goal", "logic", "mode", "variation", "weapons"}, fields)
}

func TestDefaultSettingsFormIsValid(t *testing.T) {
	_, err := ParseSettings(DefaultSettingsForm())
	assert.NoError(t, err)
}
