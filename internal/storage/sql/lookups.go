package sql

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mcoot/seedroom/internal/model"
)

// categoryTables maps each settings category to its lookup table
var categoryTables = map[string]string{
	"difficulty": "difficulties",
	"goal":       "goals",
	"logic":      "logics",
	"mode":       "modes",
	"variation":  "variations",
	"weapons":    "weapons",
}

// lookupCache holds the row IDs of the seeded lookup tables, both ways
type lookupCache struct {
	ids  map[string]map[string]uint
	keys map[string]map[uint]string
}

func newLookupCache() *lookupCache {
	return &lookupCache{
		ids:  make(map[string]map[string]uint),
		keys: make(map[string]map[uint]string),
	}
}

func (c *lookupCache) add(field, key string, id uint) {
	if c.ids[field] == nil {
		c.ids[field] = make(map[string]uint)
		c.keys[field] = make(map[uint]string)
	}
	c.ids[field][key] = id
	c.keys[field][id] = key
}

func (c *lookupCache) id(field, key string) (uint, error) {
	id, ok := c.ids[field][key]
	if !ok {
		return 0, fmt.Errorf("no %s row for key %q", field, key)
	}
	return id, nil
}

func (c *lookupCache) key(field string, id uint) (string, error) {
	key, ok := c.keys[field][id]
	if !ok {
		return "", fmt.Errorf("no %s row with id %d", field, id)
	}
	return key, nil
}

// seedLookups inserts any missing catalogue option and loads the IDs of all
// of them
func seedLookups(db *gorm.DB) (*lookupCache, error) {
	cache := newLookupCache()
	for _, cat := range model.SettingsCatalogue() {
		table, ok := categoryTables[cat.Field]
		if !ok {
			return nil, fmt.Errorf("no lookup table for settings field %q", cat.Field)
		}
		for _, opt := range cat.Options {
			row := LookupRow{Key: opt.Key, Description: opt.Description}
			err := db.Table(table).
				Where("key_name = ?", opt.Key).
				Attrs(LookupRow{Description: opt.Description}).
				FirstOrCreate(&row).Error
			if err != nil {
				return nil, fmt.Errorf("seed %s %q: %w", table, opt.Key, err)
			}
			cache.add(cat.Field, opt.Key, row.ID)
		}
	}
	return cache, nil
}

func (c *lookupCache) settingsRow(s model.Settings) (settingsRow, error) {
	row := settingsRow{
		Enemizer:   s.Enemizer,
		Spoilers:   s.Spoilers,
		Tournament: s.Tournament,
		Lang:       s.Lang,
	}
	var err error
	if row.DifficultyID, err = c.id("difficulty", string(s.Difficulty)); err != nil {
		return row, err
	}
	if row.GoalID, err = c.id("goal", string(s.Goal)); err != nil {
		return row, err
	}
	if row.LogicID, err = c.id("logic", string(s.Logic)); err != nil {
		return row, err
	}
	if row.ModeID, err = c.id("mode", string(s.Mode)); err != nil {
		return row, err
	}
	if row.VariationID, err = c.id("variation", string(s.Variation)); err != nil {
		return row, err
	}
	if row.WeaponsID, err = c.id("weapons", string(s.Weapons)); err != nil {
		return row, err
	}
	return row, nil
}

// settings rebuilds validated settings from a stored row. The keys are
// re-parsed so a tampered table cannot produce an invalid Settings.
func (c *lookupCache) settings(row settingsRow) (model.Settings, error) {
	var (
		form model.SettingsForm
		err  error
	)
	if form.Difficulty, err = c.key("difficulty", row.DifficultyID); err != nil {
		return model.Settings{}, err
	}
	if form.Goal, err = c.key("goal", row.GoalID); err != nil {
		return model.Settings{}, err
	}
	if form.Logic, err = c.key("logic", row.LogicID); err != nil {
		return model.Settings{}, err
	}
	if form.Mode, err = c.key("mode", row.ModeID); err != nil {
		return model.Settings{}, err
	}
	if form.Variation, err = c.key("variation", row.VariationID); err != nil {
		return model.Settings{}, err
	}
	if form.Weapons, err = c.key("weapons", row.WeaponsID); err != nil {
		return model.Settings{}, err
	}
	form.Enemizer = row.Enemizer
	form.Spoilers = row.Spoilers
	form.Tournament = row.Tournament
	form.Lang = row.Lang
	return model.ParseSettings(form)
}
