package janitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seedroom/internal/dependencies/mocks"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/chat"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/rooms"
	"github.com/mcoot/seedroom/internal/services/seed"
	"github.com/mcoot/seedroom/internal/storage/memory"
	"github.com/mcoot/seedroom/internal/testutil"
)

type JanitorSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	rooms      *rooms.Registry
	identities *identity.Registry
	janitor    *Janitor
	settings   model.Settings
	ctx        context.Context
}

func TestJanitorSuite(t *testing.T) {
	suite.Run(t, new(JanitorSuite))
}

func (s *JanitorSuite) SetupTest() {
	store := memory.New()
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	seeds := seed.NewLocalProvider(mocks.NewMockRandom(), s.clock)
	s.rooms = rooms.New(store, seeds, chat.NewTlkProvider(""), s.clock, logger, rooms.DefaultConfig())
	s.identities = identity.New(store, s.clock, logger, identity.Config{IdleTTL: time.Hour})
	s.janitor = New(s.rooms, s.identities, s.clock, logger, Config{SweepInterval: 10 * time.Millisecond})
	s.ctx = context.Background()

	var err error
	s.settings, err = model.ParseSettings(model.DefaultSettingsForm())
	s.Require().NoError(err)
}

func (s *JanitorSuite) TestSweepKeepsMembersOfLiveRooms() {
	alice, _ := s.identities.Issue(s.ctx, "Alice")
	idle, _ := s.identities.Issue(s.ctx, "Idle")
	_, err := s.rooms.Create(s.ctx, s.settings, alice.Token)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	res := s.janitor.Sweep(s.ctx)

	s.Equal(Result{Rooms: 0, Identities: 1}, res)
	_, err = s.identities.Get(alice.Token)
	s.NoError(err)
	_, err = s.identities.Get(idle.Token)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *JanitorSuite) TestSweepReclaimsRoomThenItsMembers() {
	alice, _ := s.identities.Issue(s.ctx, "Alice")
	_, _ = s.rooms.Create(s.ctx, s.settings, alice.Token)

	s.clock.Advance(7 * time.Hour)
	res := s.janitor.Sweep(s.ctx)

	s.Equal(Result{Rooms: 1, Identities: 1}, res)
	s.Empty(s.rooms.List())
	s.Equal(0, s.identities.Count())
}

func (s *JanitorSuite) TestRunStopsOnCancel() {
	alice, _ := s.identities.Issue(s.ctx, "Alice")
	_, _ = s.rooms.Create(s.ctx, s.settings, alice.Token)
	s.clock.Advance(7 * time.Hour)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.janitor.Run(ctx) }()

	s.Eventually(func() bool {
		return s.rooms.Stats().Rooms == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("janitor did not stop")
	}
}

func (s *JanitorSuite) TestDefaultInterval() {
	j := New(s.rooms, s.identities, s.clock, testutil.NopLogger(), Config{})
	s.Equal(time.Minute, j.interval)
}
