package identity

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seedroom/internal/dependencies/mocks"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/storage/memory"
	"github.com/mcoot/seedroom/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.registry = New(s.storage, s.clock, testutil.NopLogger(), Config{IdleTTL: time.Hour})
	s.ctx = context.Background()
}

func (s *RegistrySuite) TestIssueAndResolve() {
	for n := 1; n <= model.MaxNameLength; n++ {
		name := strings.Repeat("x", n)
		player, err := s.registry.Issue(s.ctx, name)
		s.Require().NoError(err)
		s.NotEmpty(player.Token)

		resolved, err := s.registry.Resolve(player.Token)
		s.Require().NoError(err)
		s.Equal(name, resolved.Name)
	}
}

func (s *RegistrySuite) TestIssueRejectsInvalidNames() {
	_, err := s.registry.Issue(s.ctx, "")
	s.True(model.IsValidationError(err))

	_, err = s.registry.Issue(s.ctx, strings.Repeat("x", model.MaxNameLength+1))
	s.True(model.IsValidationError(err))

	s.Equal(0, s.registry.Count())
}

func (s *RegistrySuite) TestIssueMirrorsPlayer() {
	player, _ := s.registry.Issue(s.ctx, "Alice")

	mirrored, err := s.storage.GetPlayer(s.ctx, player.Token)
	s.Require().NoError(err)
	s.Equal("Alice", mirrored.Name)
}

func (s *RegistrySuite) TestIssueRetriesOnTokenCollision() {
	tokens := []string{"dup", "dup", "fresh"}
	s.registry.newToken = func() string {
		t := tokens[0]
		tokens = tokens[1:]
		return t
	}

	first, err := s.registry.Issue(s.ctx, "Alice")
	s.Require().NoError(err)
	second, err := s.registry.Issue(s.ctx, "Bob")
	s.Require().NoError(err)

	s.Equal(model.PlayerToken("dup"), first.Token)
	s.Equal(model.PlayerToken("fresh"), second.Token)
}

func (s *RegistrySuite) TestTokensAreUnique() {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		tokens = map[model.PlayerToken]bool{}
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.registry.Issue(s.ctx, "Racer")
			if err != nil {
				return
			}
			mu.Lock()
			tokens[p.Token] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(tokens, 50)
	s.Equal(50, s.registry.Count())
}

func (s *RegistrySuite) TestResolveUnknownToken() {
	_, err := s.registry.Resolve("nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RegistrySuite) TestResolveRefreshesLastSeen() {
	player, _ := s.registry.Issue(s.ctx, "Alice")
	s.clock.Advance(10 * time.Minute)

	resolved, _ := s.registry.Resolve(player.Token)
	s.Equal(s.clock.Now(), resolved.LastSeenAt)
	s.Equal(player.CreatedAt, resolved.CreatedAt)
}

func (s *RegistrySuite) TestGetDoesNotRefresh() {
	player, _ := s.registry.Issue(s.ctx, "Alice")
	s.clock.Advance(10 * time.Minute)

	got, err := s.registry.Get(player.Token)
	s.Require().NoError(err)
	s.Equal(player.LastSeenAt, got.LastSeenAt)
}

func (s *RegistrySuite) TestRename() {
	player, _ := s.registry.Issue(s.ctx, "Alice")

	renamed, err := s.registry.Rename(s.ctx, player.Token, "Alicia")
	s.Require().NoError(err)
	s.Equal("Alicia", renamed.Name)
	s.Equal(player.Token, renamed.Token)

	mirrored, _ := s.storage.GetPlayer(s.ctx, player.Token)
	s.Equal("Alicia", mirrored.Name)
}

func (s *RegistrySuite) TestRenameValidates() {
	player, _ := s.registry.Issue(s.ctx, "Alice")

	_, err := s.registry.Rename(s.ctx, player.Token, strings.Repeat("x", 13))
	s.True(model.IsValidationError(err))

	resolved, _ := s.registry.Resolve(player.Token)
	s.Equal("Alice", resolved.Name)
}

func (s *RegistrySuite) TestRenameUnknownToken() {
	_, err := s.registry.Rename(s.ctx, "nope", "Bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RegistrySuite) TestEvictIdle() {
	idle, _ := s.registry.Issue(s.ctx, "Idle")
	busy, _ := s.registry.Issue(s.ctx, "Busy")
	s.clock.Advance(30 * time.Minute)
	fresh, _ := s.registry.Issue(s.ctx, "Fresh")
	s.clock.Advance(45 * time.Minute)

	inUse := func(t model.PlayerToken) bool { return t == busy.Token }
	evicted := s.registry.EvictIdle(s.ctx, s.clock.Now(), inUse)

	s.Equal(1, evicted)
	_, err := s.registry.Resolve(idle.Token)
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.registry.Resolve(busy.Token)
	s.NoError(err)
	_, err = s.registry.Resolve(fresh.Token)
	s.NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, idle.Token)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RegistrySuite) TestEvictIdleNothingToDo() {
	_, _ = s.registry.Issue(s.ctx, "Alice")

	s.Equal(0, s.registry.EvictIdle(s.ctx, s.clock.Now(), nil))
	s.Equal(1, s.registry.Count())
}

func (s *RegistrySuite) TestDefaultConfig() {
	r := New(s.storage, s.clock, testutil.NopLogger(), Config{})
	s.Equal(24*time.Hour, r.idleTTL)
}

func (s *RegistrySuite) TestNegativeIdleTTLFallsBackToDefault() {
	r := New(s.storage, s.clock, testutil.NopLogger(), Config{IdleTTL: -time.Hour})
	s.Equal(24*time.Hour, r.idleTTL)

	_, _ = r.Issue(s.ctx, "Alice")
	s.clock.Advance(time.Minute)

	s.Equal(0, r.EvictIdle(s.ctx, s.clock.Now(), nil))
	s.Equal(1, r.Count())
}
