package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seedroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		Token:     "token-1",
		Name:      "Alice",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "token-1")
	s.Require().NoError(err)
	s.Equal(player.Token, retrieved.Token)
	s.Equal(player.Name, retrieved.Name)
	s.True(player.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Token: "token-1", Name: "Alice"})

	err := s.storage.DeletePlayer(s.ctx, "token-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "token-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayerTTL() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Token: "token-1", Name: "Alice"})

	s.Equal(time.Hour, s.mini.TTL(playerKey("token-1")))

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetPlayer(s.ctx, "token-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) roomRecord(expiresAt time.Time) *model.RoomRecord {
	finish := 95 * time.Minute
	return &model.RoomRecord{
		ID: "alttpr_abc123",
		Settings: model.Settings{
			Difficulty: model.DifficultyNormal,
			Goal:       model.GoalGanon,
			Logic:      model.LogicNoGlitches,
			Mode:       model.ModeOpen,
			Variation:  model.VariationNone,
			Weapons:    model.WeaponsRandomized,
			Lang:       "en",
		},
		Seed:    model.Seed{Hash: "abc123", Permalink: "https://alttpr.com/en/h/abc123"},
		Chat:    model.ChatChannel{Name: "alttr_abc123", URL: "https://tlk.io/alttr_abc123"},
		Creator: "token-1",
		Members: []model.Member{
			{Token: "token-1", FinishTime: &finish},
			{Token: "token-2"},
		},
		ExpiresAt: expiresAt,
	}
}

func (s *StorageSuite) TestSaveAndGetRoom() {
	rec := s.roomRecord(time.Now().Add(6 * time.Hour))

	s.Require().NoError(s.storage.SaveRoom(s.ctx, rec))

	retrieved, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.Settings, retrieved.Settings)
	s.Equal(rec.Chat, retrieved.Chat)
	s.Require().Len(retrieved.Members, 2)
	s.Require().NotNil(retrieved.Members[0].FinishTime)
	s.Equal(95*time.Minute, *retrieved.Members[0].FinishTime)
	s.Nil(retrieved.Members[1].FinishTime)
}

func (s *StorageSuite) TestRoomExpiresAtDeadline() {
	rec := s.roomRecord(time.Now().Add(6 * time.Hour))
	_ = s.storage.SaveRoom(s.ctx, rec)

	ttl := s.mini.TTL(roomKey(rec.ID))
	s.True(ttl > 5*time.Hour && ttl <= 6*time.Hour, "unexpected ttl %s", ttl)

	s.mini.FastForward(7 * time.Hour)
	_, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	rec := s.roomRecord(time.Now().Add(time.Hour))
	_ = s.storage.SaveRoom(s.ctx, rec)

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, rec.ID))

	_, err := s.storage.GetRoom(s.ctx, rec.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
	s.False(s.mini.Exists(roomKey(rec.ID)))
}

func (s *StorageSuite) TestKeyFormat() {
	s.Equal("seedroom:player:abc", playerKey("abc"))
	s.Equal("seedroom:room:alttpr_x", roomKey("alttpr_x"))
}
