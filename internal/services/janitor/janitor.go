package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/model"
)

// Config holds configuration for the janitor
type Config struct {
	// SweepInterval is the time between passes
	SweepInterval time.Duration
}

// DefaultConfig returns default janitor configuration
func DefaultConfig() Config {
	return Config{
		SweepInterval: time.Minute,
	}
}

// Rooms is the part of the room registry the janitor drives
type Rooms interface {
	SweepExpired(ctx context.Context, now time.Time) int
	IsMember(token model.PlayerToken) bool
}

// Identities is the part of the identity registry the janitor drives
type Identities interface {
	EvictIdle(ctx context.Context, now time.Time, inUse func(model.PlayerToken) bool) int
}

// Result counts what a single pass reclaimed
type Result struct {
	Rooms      int
	Identities int
}

// Janitor periodically reclaims expired rooms, then idle identities that
// no longer belong to any room
type Janitor struct {
	rooms      Rooms
	identities Identities
	clock      clock.Clock
	logger     *slog.Logger
	interval   time.Duration
}

// New creates a janitor
func New(rooms Rooms, identities Identities, clock clock.Clock, logger *slog.Logger, cfg Config) *Janitor {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Janitor{
		rooms:      rooms,
		identities: identities,
		clock:      clock,
		logger:     logger,
		interval:   cfg.SweepInterval,
	}
}

// Run sweeps every interval until ctx is cancelled. It always returns nil so
// it can sit in an errgroup beside the HTTP server.
func (j *Janitor) Run(ctx context.Context) error {
	j.logger.Info("janitor started", slog.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("janitor stopped")
			return nil
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep performs one pass. Rooms go first so that identities freed by an
// expired room are evicted in the same pass.
func (j *Janitor) Sweep(ctx context.Context) Result {
	now := j.clock.Now()
	res := Result{
		Rooms: j.rooms.SweepExpired(ctx, now),
	}
	res.Identities = j.identities.EvictIdle(ctx, now, j.rooms.IsMember)

	if res.Rooms > 0 || res.Identities > 0 {
		j.logger.Debug("janitor pass",
			slog.Int("rooms", res.Rooms),
			slog.Int("identities", res.Identities),
		)
	}
	return res
}
