package sql

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/mcoot/seedroom/internal/model"
)

func parse(t *testing.T, m any) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

func TestTableNames(t *testing.T) {
	var tables []string
	for _, m := range allModels() {
		tables = append(tables, parse(t, m).Table)
	}
	assert.Equal(t, []string{
		"identities",
		"difficulties", "goals", "logics", "modes", "variations", "weapons",
		"settings", "rooms", "room_membership",
	}, tables)
}

func TestLookupTablesCoverCatalogue(t *testing.T) {
	for _, cat := range model.SettingsCatalogue() {
		_, ok := categoryTables[cat.Field]
		assert.True(t, ok, "missing table for %s", cat.Field)
	}
	assert.Len(t, categoryTables, len(model.SettingsCatalogue()))
}

func TestLookupRowsAreEmbedded(t *testing.T) {
	s := parse(t, &difficultyRow{})

	key := s.LookUpField("Key")
	require.NotNil(t, key)
	assert.Equal(t, "key_name", key.DBName)
	assert.Contains(t, key.TagSettings, "UNIQUEINDEX")
	assert.NotNil(t, s.PrioritizedPrimaryField)
}

func TestRoomColumns(t *testing.T) {
	s := parse(t, &roomRow{})

	for field, column := range map[string]string{
		"HashCode":   "hash_code",
		"SettingsID": "settings_id",
		"CreatorID":  "creator_id",
		"ChatURL":    "chat_url",
		"ExpireTime": "expire_time",
	} {
		f := s.LookUpField(field)
		require.NotNil(t, f, field)
		assert.Equal(t, column, f.DBName)
	}
	assert.Contains(t, s.LookUpField("HashCode").TagSettings, "UNIQUEINDEX")

	m := parse(t, &membershipRow{})
	assert.Equal(t, "finish_seconds", m.LookUpField("FinishSeconds").DBName)
	assert.Equal(t, "player_id", m.LookUpField("PlayerID").DBName)
}

func TestIdentityRowRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := &model.Player{Token: "tok", Name: "Alice", CreatedAt: now, LastSeenAt: now.Add(time.Minute)}

	assert.Equal(t, p, toIdentityRow(p).player())
}

func TestFinishSeconds(t *testing.T) {
	assert.Nil(t, finishSeconds(nil))
	assert.Nil(t, finishDuration(nil))

	d := time.Hour + 2*time.Second + 500*time.Millisecond
	s := finishSeconds(&d)
	require.NotNil(t, s)
	assert.Equal(t, int64(3602), *s)
	assert.Equal(t, time.Hour+2*time.Second, *finishDuration(s))
}

func TestRoomIDHelpers(t *testing.T) {
	assert.Equal(t, "abc123", hashFromRoomID("alttpr_abc123"))
	assert.Equal(t, "alttr_abc", chatNameFromURL("https://tlk.io/alttr_abc"))
}

func testLookups() *lookupCache {
	c := newLookupCache()
	var id uint
	for _, cat := range model.SettingsCatalogue() {
		for _, opt := range cat.Options {
			id++
			c.add(cat.Field, opt.Key, id)
		}
	}
	return c
}

func TestSettingsRowRoundTrip(t *testing.T) {
	c := testLookups()
	settings, err := model.ParseSettings(model.SettingsForm{
		Difficulty: "expert",
		Goal:       "dungeons",
		Logic:      "MajorGlitches",
		Mode:       "standard",
		Variation:  "retro",
		Weapons:    "uncle",
		Spoilers:   true,
		Lang:       "de",
	})
	require.NoError(t, err)

	row, err := c.settingsRow(settings)
	require.NoError(t, err)
	assert.NotZero(t, row.DifficultyID)
	assert.True(t, row.Spoilers)

	back, err := c.settings(row)
	require.NoError(t, err)
	assert.Equal(t, settings, back)
}

func TestSettingsRowUnknownID(t *testing.T) {
	c := testLookups()

	_, err := c.settings(settingsRow{DifficultyID: 9999})
	assert.Error(t, err)

	_, err = c.settingsRow(model.Settings{Difficulty: "nightmare"})
	assert.Error(t, err)
}
