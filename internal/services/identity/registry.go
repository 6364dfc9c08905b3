package identity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/storage"
)

// Config holds configuration for the identity registry
type Config struct {
	// IdleTTL is how long an identity may go unresolved before it becomes
	// eligible for eviction
	IdleTTL time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		IdleTTL: 24 * time.Hour,
	}
}

// Registry is the pool of known players, keyed by bearer token
type Registry struct {
	storage  storage.Storage
	clock    clock.Clock
	logger   *slog.Logger
	newToken func() string
	idleTTL  time.Duration

	mu      sync.RWMutex
	players map[model.PlayerToken]*model.Player
}

// New creates an empty identity registry
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Registry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultConfig().IdleTTL
	}
	return &Registry{
		storage:  storage,
		clock:    clock,
		logger:   logger,
		newToken: uuid.NewString,
		idleTTL:  cfg.IdleTTL,
		players:  make(map[model.PlayerToken]*model.Player),
	}
}

// Issue validates the name and allocates a new identity with a fresh token
func (r *Registry) Issue(ctx context.Context, name string) (model.Player, error) {
	if err := model.ValidateName(name); err != nil {
		return model.Player{}, err
	}

	now := r.clock.Now()

	r.mu.Lock()
	token := model.PlayerToken(r.newToken())
	for {
		if _, taken := r.players[token]; !taken {
			break
		}
		token = model.PlayerToken(r.newToken())
	}
	player := &model.Player{
		Token:      token,
		Name:       name,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	r.players[token] = player
	result := *player
	r.mu.Unlock()

	r.mirror(ctx, &result)
	r.logger.Info("identity issued", slog.String("name", name))
	return result, nil
}

// Resolve looks up the player holding token and marks it as recently seen
func (r *Registry) Resolve(token model.PlayerToken) (model.Player, error) {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[token]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	player.LastSeenAt = now
	return *player, nil
}

// Get looks up a player without refreshing it, for displaying other
// players' names
func (r *Registry) Get(token model.PlayerToken) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[token]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return *player, nil
}

// Rename replaces a player's name
func (r *Registry) Rename(ctx context.Context, token model.PlayerToken, name string) (model.Player, error) {
	if err := model.ValidateName(name); err != nil {
		return model.Player{}, err
	}

	r.mu.Lock()
	player, ok := r.players[token]
	if !ok {
		r.mu.Unlock()
		return model.Player{}, model.ErrPlayerNotFound
	}
	player.Name = name
	player.LastSeenAt = r.clock.Now()
	result := *player
	r.mu.Unlock()

	r.mirror(ctx, &result)
	return result, nil
}

// EvictIdle removes identities that have not been resolved within the idle
// TTL and for which inUse reports false. inUse is called without the
// registry lock held. Returns the number of identities evicted.
func (r *Registry) EvictIdle(ctx context.Context, now time.Time, inUse func(model.PlayerToken) bool) int {
	cutoff := now.Add(-r.idleTTL)

	r.mu.RLock()
	var candidates []model.PlayerToken
	for token, p := range r.players {
		if p.LastSeenAt.Before(cutoff) {
			candidates = append(candidates, token)
		}
	}
	r.mu.RUnlock()

	var idle []model.PlayerToken
	for _, token := range candidates {
		if inUse == nil || !inUse(token) {
			idle = append(idle, token)
		}
	}
	if len(idle) == 0 {
		return 0
	}

	var evicted []model.PlayerToken
	r.mu.Lock()
	for _, token := range idle {
		p, ok := r.players[token]
		// Seen again since the scan
		if !ok || !p.LastSeenAt.Before(cutoff) {
			continue
		}
		delete(r.players, token)
		evicted = append(evicted, token)
	}
	r.mu.Unlock()

	for _, token := range evicted {
		if err := r.storage.DeletePlayer(ctx, token); err != nil {
			r.logger.Warn("failed to delete mirrored identity", slog.Any("error", err))
		}
	}
	if len(evicted) > 0 {
		r.logger.Info("evicted idle identities", slog.Int("count", len(evicted)))
	}
	return len(evicted)
}

// Count returns the number of known identities
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

func (r *Registry) mirror(ctx context.Context, p *model.Player) {
	if err := r.storage.SavePlayer(ctx, p); err != nil {
		r.logger.Warn("failed to mirror identity", slog.Any("error", err))
	}
}
