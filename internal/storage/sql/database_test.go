package sql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mcoot/seedroom/internal/model"
)

type DatabaseSuite struct {
	suite.Suite
	db      *gorm.DB
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, new(DatabaseSuite))
}

func (s *DatabaseSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	// Every connection to :memory: is its own database
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.db = db
	s.storage, err = NewWithDB(db)
	s.Require().NoError(err)
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *DatabaseSuite) TearDownTest() {
	s.NoError(s.storage.Close())
}

func (s *DatabaseSuite) count(m any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(m).Count(&n).Error)
	return n
}

func (s *DatabaseSuite) record(hash string, members ...model.Member) *model.RoomRecord {
	settings, err := model.ParseSettings(model.DefaultSettingsForm())
	s.Require().NoError(err)
	return &model.RoomRecord{
		ID:       model.RoomIDForHash(hash),
		Settings: settings,
		Seed: model.Seed{
			Hash:        hash,
			Permalink:   "https://alttpr.com/en/h/" + hash,
			GeneratedAt: s.now,
		},
		Chat:      model.ChatChannel{Name: "alttr_" + hash, URL: "https://tlk.io/alttr_" + hash},
		Creator:   "alice",
		Members:   members,
		CreatedAt: s.now,
		ExpiresAt: s.now.Add(6 * time.Hour),
	}
}

func finish(d time.Duration) *time.Duration {
	return &d
}

func (s *DatabaseSuite) assertRecord(want, got *model.RoomRecord) {
	s.Equal(want.ID, got.ID)
	s.Equal(want.Settings, got.Settings)
	s.Equal(want.Seed.Hash, got.Seed.Hash)
	s.Equal(want.Seed.Permalink, got.Seed.Permalink)
	s.Equal(want.Chat, got.Chat)
	s.Equal(want.Creator, got.Creator)
	s.WithinDuration(want.CreatedAt, got.CreatedAt, 0)
	s.WithinDuration(want.ExpiresAt, got.ExpiresAt, 0)
	s.Require().Len(got.Members, len(want.Members))
	for i := range want.Members {
		s.Equal(want.Members[i].Token, got.Members[i].Token)
		s.WithinDuration(want.Members[i].JoinedAt, got.Members[i].JoinedAt, 0)
		s.Equal(want.Members[i].FinishTime, got.Members[i].FinishTime)
	}
}

// Lookup tables

func (s *DatabaseSuite) TestLookupsSeededFromCatalogue() {
	for _, cat := range model.SettingsCatalogue() {
		var rows []LookupRow
		s.Require().NoError(s.db.Table(categoryTables[cat.Field]).Order("id").Find(&rows).Error)
		s.Require().Len(rows, len(cat.Options), cat.Field)
		for i, opt := range cat.Options {
			s.Equal(opt.Key, rows[i].Key)
			s.Equal(opt.Description, rows[i].Description)
		}
	}
}

func (s *DatabaseSuite) TestSeedLookupsIsIdempotent() {
	again, err := seedLookups(s.db)
	s.Require().NoError(err)

	s.Equal(s.storage.lookups.ids, again.ids)
	s.Equal(int64(len(model.SettingsCatalogue()[0].Options)), s.count(&difficultyRow{}))
}

// Players

func (s *DatabaseSuite) TestPlayerRoundTrip() {
	p := &model.Player{Token: "alice", Name: "Alice", CreatedAt: s.now, LastSeenAt: s.now}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))

	got, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.WithinDuration(s.now, got.CreatedAt, 0)
}

func (s *DatabaseSuite) TestSavePlayerUpserts() {
	p := &model.Player{Token: "alice", Name: "Alice", CreatedAt: s.now, LastSeenAt: s.now}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))

	p.Name = "Alicia"
	p.LastSeenAt = s.now.Add(time.Hour)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))

	got, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("Alicia", got.Name)
	s.WithinDuration(s.now.Add(time.Hour), got.LastSeenAt, 0)
	s.Equal(int64(1), s.count(&identityRow{}))
}

func (s *DatabaseSuite) TestDeletePlayer() {
	p := &model.Player{Token: "alice", Name: "Alice", CreatedAt: s.now, LastSeenAt: s.now}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "alice"))

	_, err := s.storage.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Rooms

func (s *DatabaseSuite) TestRoomRoundTrip() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{Token: "alice", Name: "Alice", CreatedAt: s.now, LastSeenAt: s.now}))
	rec := s.record("abc123",
		model.Member{Token: "alice", JoinedAt: s.now},
		model.Member{Token: "bob", JoinedAt: s.now.Add(time.Minute), FinishTime: finish(time.Hour + 42*time.Minute + 7*time.Second)},
	)
	s.Require().NoError(s.storage.SaveRoom(s.ctx, rec))

	got, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.assertRecord(rec, got)

	// Members never mirrored as players get a bare identity; known ones keep their name
	alice, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("Alice", alice.Name)
	_, err = s.storage.GetPlayer(s.ctx, "bob")
	s.NoError(err)
}

func (s *DatabaseSuite) TestSaveRoomUpsertsAndReplacesMembership() {
	rec := s.record("abc123",
		model.Member{Token: "alice", JoinedAt: s.now},
		model.Member{Token: "bob", JoinedAt: s.now.Add(time.Minute)},
	)
	s.Require().NoError(s.storage.SaveRoom(s.ctx, rec))

	rec.Members = []model.Member{
		{Token: "alice", JoinedAt: s.now, FinishTime: finish(90 * time.Minute)},
		{Token: "carol", JoinedAt: s.now.Add(2 * time.Minute)},
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, rec))

	got, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.assertRecord(rec, got)

	s.Equal(int64(1), s.count(&roomRow{}))
	s.Equal(int64(1), s.count(&settingsRow{}))
	s.Equal(int64(2), s.count(&membershipRow{}))
}

func (s *DatabaseSuite) TestSaveRoomWithoutMembers() {
	rec := s.record("abc123")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, rec))

	got, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Empty(got.Members)
	s.Equal(model.PlayerToken("alice"), got.Creator)
}

func (s *DatabaseSuite) TestDeleteRoomRemovesSettingsAndMembership() {
	other := s.record("zzz999", model.Member{Token: "alice", JoinedAt: s.now})
	s.Require().NoError(s.storage.SaveRoom(s.ctx, other))
	rec := s.record("abc123",
		model.Member{Token: "alice", JoinedAt: s.now},
		model.Member{Token: "bob", JoinedAt: s.now},
	)
	s.Require().NoError(s.storage.SaveRoom(s.ctx, rec))

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, rec.ID))

	_, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
	s.Equal(int64(1), s.count(&roomRow{}))
	s.Equal(int64(1), s.count(&settingsRow{}))
	s.Equal(int64(1), s.count(&membershipRow{}))
	s.Equal(int64(2), s.count(&identityRow{}))

	_, err = s.storage.GetRoom(s.ctx, other.ID)
	s.NoError(err)
}

func (s *DatabaseSuite) TestDeleteUnknownRoom() {
	s.NoError(s.storage.DeleteRoom(s.ctx, model.RoomIDForHash("missing")))
}

func (s *DatabaseSuite) TestGetUnknownRoom() {
	_, err := s.storage.GetRoom(s.ctx, model.RoomIDForHash("missing"))
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func TestMigrateNilDB(t *testing.T) {
	err := Migrate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil DB")
}
