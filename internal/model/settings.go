package model

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when a settings form does not name one
const DefaultLanguage = "en"

// Difficulty is the item pool difficulty of a seed
type Difficulty string

const (
	DifficultyNormal       Difficulty = "normal"
	DifficultyEasy         Difficulty = "easy"
	DifficultyHard         Difficulty = "hard"
	DifficultyExpert       Difficulty = "expert"
	DifficultyInsane       Difficulty = "insane"
	DifficultyCrowdControl Difficulty = "crowdControl"
)

// Goal is the win condition of a seed
type Goal string

const (
	GoalGanon        Goal = "ganon"
	GoalDungeons     Goal = "dungeons"
	GoalPedestal     Goal = "pedestal"
	GoalTriforceHunt Goal = "triforce-hunt"
)

// Logic is the glitch logic a seed is generated against
type Logic string

const (
	LogicNoGlitches        Logic = "NoGlitches"
	LogicOverworldGlitches Logic = "OverworldGlitches"
	LogicMajorGlitches     Logic = "MajorGlitches"
	LogicNone              Logic = "None"
)

// Mode is the world state a seed starts in
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeOpen     Mode = "open"
	ModeInverted Mode = "inverted"
)

// Variation is an optional rule variant applied to a seed
type Variation string

const (
	VariationNone      Variation = "none"
	VariationTimedRace Variation = "timed-race"
	VariationTimedOHKO Variation = "timed-ohko"
	VariationOHKO      Variation = "ohko"
	VariationKeysanity Variation = "key-sanity"
	VariationRetro     Variation = "retro"
)

// Weapons controls how swords are placed
type Weapons string

const (
	WeaponsUncle      Weapons = "uncle"
	WeaponsRandomized Weapons = "randomized"
	WeaponsSwordless  Weapons = "swordless"
)

// Option is one selectable value of a settings category
type Option struct {
	Key         string
	Description string
}

// Category lists the options of one settings field, in display order
type Category struct {
	Field   string
	Options []Option
}

type enumeration[T ~string] struct {
	field   string
	options []Option
}

func (e enumeration[T]) parse(raw string) (T, error) {
	for _, o := range e.options {
		if o.Key == raw {
			return T(raw), nil
		}
	}
	return "", &ValidationError{Field: e.field, Message: "Selected " + e.field + " does not exist"}
}

func (e enumeration[T]) describe(v T) string {
	for _, o := range e.options {
		if o.Key == string(v) {
			return o.Description
		}
	}
	return string(v)
}

func (e enumeration[T]) category() Category {
	opts := make([]Option, len(e.options))
	copy(opts, e.options)
	return Category{Field: e.field, Options: opts}
}

var (
	difficulties = enumeration[Difficulty]{field: "difficulty", options: []Option{
		{string(DifficultyNormal), "Normal"},
		{string(DifficultyEasy), "Easy"},
		{string(DifficultyHard), "Hard"},
		{string(DifficultyExpert), "Expert"},
		{string(DifficultyInsane), "Insane"},
		{string(DifficultyCrowdControl), "Crowd Control"},
	}}
	goals = enumeration[Goal]{field: "goal", options: []Option{
		{string(GoalGanon), "Defeat Ganon"},
		{string(GoalDungeons), "All Dungeons"},
		{string(GoalPedestal), "Master Sword Pedestal"},
		{string(GoalTriforceHunt), "Triforce Pieces"},
	}}
	logics = enumeration[Logic]{field: "logic", options: []Option{
		{string(LogicNoGlitches), "No Glitches"},
		{string(LogicOverworldGlitches), "Overworld Glitches"},
		{string(LogicMajorGlitches), "Major Glitches"},
		{string(LogicNone), "None (I know what I’m doing)"},
	}}
	modes = enumeration[Mode]{field: "mode", options: []Option{
		{string(ModeStandard), "Standard"},
		{string(ModeOpen), "Open"},
		{string(ModeInverted), "Inverted"},
	}}
	variations = enumeration[Variation]{field: "variation", options: []Option{
		{string(VariationNone), "None"},
		{string(VariationTimedRace), "Timed Race"},
		{string(VariationTimedOHKO), "Timed OHKO"},
		{string(VariationOHKO), "OHKO"},
		{string(VariationKeysanity), "Keysanity"},
		{string(VariationRetro), "Retro"},
	}}
	weaponsModes = enumeration[Weapons]{field: "weapons", options: []Option{
		{string(WeaponsUncle), "Uncle Assured"},
		{string(WeaponsRandomized), "Randomized"},
		{string(WeaponsSwordless), "Swordless"},
	}}
)

// Description returns the human-readable label
func (d Difficulty) Description() string { return difficulties.describe(d) }

// Description returns the human-readable label
func (g Goal) Description() string { return goals.describe(g) }

// Description returns the human-readable label
func (l Logic) Description() string { return logics.describe(l) }

// Description returns the human-readable label
func (m Mode) Description() string { return modes.describe(m) }

// Description returns the human-readable label
func (v Variation) Description() string { return variations.describe(v) }

// Description returns the human-readable label
func (w Weapons) Description() string { return weaponsModes.describe(w) }

// SettingsCatalogue returns every settings category with its options,
// in validation order
func SettingsCatalogue() []Category {
	return []Category{
		difficulties.category(),
		goals.category(),
		logics.category(),
		modes.category(),
		variations.category(),
		weaponsModes.category(),
	}
}

// SettingsForm is the unvalidated settings input supplied by a caller
type SettingsForm struct {
	Difficulty string
	Goal       string
	Logic      string
	Mode       string
	Variation  string
	Weapons    string
	Enemizer   bool
	Spoilers   bool
	Tournament bool
	Lang       string
}

// DefaultSettingsForm returns the form preselected in the UI
func DefaultSettingsForm() SettingsForm {
	return SettingsForm{
		Difficulty: string(DifficultyNormal),
		Goal:       string(GoalGanon),
		Logic:      string(LogicNoGlitches),
		Mode:       string(ModeOpen),
		Variation:  string(VariationNone),
		Weapons:    string(WeaponsRandomized),
		Lang:       DefaultLanguage,
	}
}

// Settings is a validated, immutable game configuration.
// Obtain one through ParseSettings.
type Settings struct {
	Difficulty Difficulty
	Goal       Goal
	Logic      Logic
	Mode       Mode
	Variation  Variation
	Weapons    Weapons
	Enemizer   bool
	Spoilers   bool
	Tournament bool
	Lang       string
}

// ParseSettings validates a form field by field in a fixed order
// (difficulty, goal, logic, mode, variation, weapons, then language) and
// returns the first failure as a *ValidationError.
func ParseSettings(form SettingsForm) (Settings, error) {
	var (
		s   Settings
		err error
	)
	if s.Difficulty, err = difficulties.parse(form.Difficulty); err != nil {
		return Settings{}, err
	}
	if s.Goal, err = goals.parse(form.Goal); err != nil {
		return Settings{}, err
	}
	if s.Logic, err = logics.parse(form.Logic); err != nil {
		return Settings{}, err
	}
	if s.Mode, err = modes.parse(form.Mode); err != nil {
		return Settings{}, err
	}
	if s.Variation, err = variations.parse(form.Variation); err != nil {
		return Settings{}, err
	}
	if s.Weapons, err = weaponsModes.parse(form.Weapons); err != nil {
		return Settings{}, err
	}

	lang := form.Lang
	if lang == "" {
		lang = DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Settings{}, &ValidationError{Field: "lang", Message: "Selected language does not exist"}
	}
	base, _ := tag.Base()
	s.Lang = base.String()

	s.Enemizer = form.Enemizer
	s.Spoilers = form.Spoilers
	s.Tournament = form.Tournament
	return s, nil
}

// Form converts validated settings back into their raw form
func (s Settings) Form() SettingsForm {
	return SettingsForm{
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
