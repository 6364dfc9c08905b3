package rooms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/services/chat"
	"github.com/mcoot/seedroom/internal/services/seed"
	"github.com/mcoot/seedroom/internal/storage"
)

// Config holds configuration for the room registry
type Config struct {
	// MaxRooms caps live rooms plus creations in progress
	MaxRooms int
	// RoomTTL is how long a room lives after creation
	RoomTTL time.Duration
	// SeedTimeout bounds a single seed generation call
	SeedTimeout time.Duration
}

// DefaultConfig returns default room configuration
func DefaultConfig() Config {
	return Config{
		MaxRooms:    100,
		RoomTTL:     6 * time.Hour,
		SeedTimeout: 30 * time.Second,
	}
}

// Stats is a snapshot of registry occupancy
type Stats struct {
	Rooms    int
	Reserved int
	Capacity int
}

// Registry owns the live rooms. Its lock is always taken before any room's
// own lock.
type Registry struct {
	storage storage.Storage
	seeds   seed.Provider
	chats   chat.Provider
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config

	mu       sync.RWMutex
	rooms    map[model.RoomID]*model.Room
	reserved int

	// mirrorMu orders mirror writes against deletes so a room closed while
	// its save is in flight is never written back after its delete
	mirrorMu sync.Mutex
}

// New creates an empty room registry
func New(
	storage storage.Storage,
	seeds seed.Provider,
	chats chat.Provider,
	clock clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Registry {
	defaults := DefaultConfig()
	if cfg.MaxRooms <= 0 {
		cfg.MaxRooms = defaults.MaxRooms
	}
	if cfg.RoomTTL <= 0 {
		cfg.RoomTTL = defaults.RoomTTL
	}
	if cfg.SeedTimeout <= 0 {
		cfg.SeedTimeout = defaults.SeedTimeout
	}
	return &Registry{
		storage: storage,
		seeds:   seeds,
		chats:   chats,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
		rooms:   make(map[model.RoomID]*model.Room),
	}
}

// Create generates a seed and chat channel for settings and registers a new
// room with creator as its first member. No lock is held while the seed is
// generated; a reserved slot keeps the capacity bound exact meanwhile.
func (r *Registry) Create(ctx context.Context, settings model.Settings, creator model.PlayerToken) (*model.Room, error) {
	if err := r.reserve(); err != nil {
		return nil, err
	}

	seedCtx, cancel := context.WithTimeout(ctx, r.cfg.SeedTimeout)
	generated, err := r.seeds.Generate(seedCtx, settings)
	cancel()
	if err != nil {
		r.release()
		if !errors.Is(err, model.ErrSeedUnavailable) {
			err = fmt.Errorf("%w: %w", model.ErrSeedUnavailable, err)
		}
		r.logger.Warn("seed generation failed", slog.Any("error", err))
		return nil, fmt.Errorf("generate seed: %w", err)
	}

	channel, err := r.chats.ForSeed(generated.Hash)
	if err != nil {
		r.release()
		return nil, fmt.Errorf("create chat channel: %w", err)
	}

	room := model.NewRoom(settings, *generated, channel, creator, r.clock.Now(), r.cfg.RoomTTL)

	r.mu.Lock()
	r.reserved--
	if existing, ok := r.rooms[room.ID]; ok {
		if !existing.IsExpired(room.CreatedAt) {
			r.mu.Unlock()
			return nil, model.ErrRoomExists
		}
		existing.Close()
	}
	r.rooms[room.ID] = room
	r.mu.Unlock()

	r.save(ctx, room)
	r.logger.Info("room created",
		slog.String("room", string(room.ID)),
		slog.Time("expires_at", room.ExpiresAt),
	)
	return room, nil
}

func (r *Registry) reserve() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rooms)+r.reserved >= r.cfg.MaxRooms {
		return model.ErrCapacityExceeded
	}
	r.reserved++
	return nil
}

func (r *Registry) release() {
	r.mu.Lock()
	r.reserved--
	r.mu.Unlock()
}

// Lookup returns the live room with the given ID. A room found past its
// deadline is removed and reported as not found.
func (r *Registry) Lookup(id model.RoomID) (*model.Room, error) {
	r.mu.RLock()
	room, ok := r.rooms[id]
	r.mu.RUnlock()
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	if !room.IsExpired(r.clock.Now()) {
		return room, nil
	}

	r.mu.Lock()
	removed := r.removeLocked(id, room)
	r.mu.Unlock()
	if removed {
		r.delete(context.Background(), id)
	}
	return nil, model.ErrRoomNotFound
}

// removeLocked deletes and closes room if it is still the one registered
// under id. Callers hold the write lock.
func (r *Registry) removeLocked(id model.RoomID, room *model.Room) bool {
	if current, ok := r.rooms[id]; !ok || current != room {
		return false
	}
	delete(r.rooms, id)
	room.Close()
	return true
}

// Remove deletes a room. Removing an unknown room is a no-op.
func (r *Registry) Remove(ctx context.Context, id model.RoomID) {
	r.mu.Lock()
	room, ok := r.rooms[id]
	if ok {
		r.removeLocked(id, room)
	}
	r.mu.Unlock()

	if ok {
		r.delete(ctx, id)
		r.logger.Info("room removed", slog.String("room", string(id)))
	}
}

// RemoveAs deletes a room on behalf of requester, who must be its creator
func (r *Registry) RemoveAs(ctx context.Context, id model.RoomID, requester model.PlayerToken) error {
	now := r.clock.Now()

	r.mu.Lock()
	room, ok := r.rooms[id]
	if !ok {
		r.mu.Unlock()
		return model.ErrRoomNotFound
	}
	if room.IsExpired(now) {
		r.removeLocked(id, room)
		r.mu.Unlock()
		r.delete(ctx, id)
		return model.ErrRoomNotFound
	}
	if !room.IsCreator(requester) {
		r.mu.Unlock()
		return model.ErrNotCreator
	}
	r.removeLocked(id, room)
	r.mu.Unlock()

	r.delete(ctx, id)
	r.logger.Info("room removed by creator", slog.String("room", string(id)))
	return nil
}

// SweepExpired removes every room whose deadline is at or before now and
// returns how many were removed
func (r *Registry) SweepExpired(ctx context.Context, now time.Time) int {
	var expired []model.RoomID

	r.mu.Lock()
	for id, room := range r.rooms {
		if room.IsExpired(now) {
			r.removeLocked(id, room)
			expired = append(expired, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		r.delete(ctx, id)
	}
	if len(expired) > 0 {
		r.logger.Info("swept expired rooms", slog.Int("count", len(expired)))
	}
	return len(expired)
}

// List returns the live rooms, newest first
func (r *Registry) List() []*model.Room {
	now := r.clock.Now()

	r.mu.RLock()
	result := make([]*model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if !room.IsExpired(now) {
			result = append(result, room)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Join adds a player to a live room. Joining twice is a no-op.
func (r *Registry) Join(ctx context.Context, id model.RoomID, token model.PlayerToken) (*model.Room, error) {
	room, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	if room.HasMember(token) {
		return room, nil
	}
	if err := room.AddMember(token, r.clock.Now()); err != nil {
		return nil, err
	}
	r.save(ctx, room)
	return room, nil
}

// Leave removes a player from a live room. Leaving a room the player is not
// in is a no-op.
func (r *Registry) Leave(ctx context.Context, id model.RoomID, token model.PlayerToken) error {
	room, err := r.Lookup(id)
	if err != nil {
		return err
	}
	if !room.HasMember(token) {
		return nil
	}
	if err := room.RemoveMember(token); err != nil {
		return err
	}
	r.save(ctx, room)
	return nil
}

// RecordTime stores a member's finishing time
func (r *Registry) RecordTime(ctx context.Context, id model.RoomID, token model.PlayerToken, finish time.Duration) (*model.Room, error) {
	room, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	if err := room.RecordFinish(token, finish); err != nil {
		return nil, err
	}
	r.save(ctx, room)
	return room, nil
}

// IsMember reports whether the player belongs to any live room
func (r *Registry) IsMember(token model.PlayerToken) bool {
	now := r.clock.Now()

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.rooms {
		if !room.IsExpired(now) && room.HasMember(token) {
			return true
		}
	}
	return false
}

// Stats returns current occupancy
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		Rooms:    len(r.rooms),
		Reserved: r.reserved,
		Capacity: r.cfg.MaxRooms,
	}
}

func (r *Registry) save(ctx context.Context, room *model.Room) {
	r.mirrorMu.Lock()
	defer r.mirrorMu.Unlock()
	if room.IsClosed() {
		return
	}
	if err := r.storage.SaveRoom(ctx, room.Record()); err != nil {
		r.logger.Warn("failed to mirror room",
			slog.String("room", string(room.ID)),
			slog.Any("error", err),
		)
	}
}

func (r *Registry) delete(ctx context.Context, id model.RoomID) {
	r.mirrorMu.Lock()
	defer r.mirrorMu.Unlock()
	if err := r.storage.DeleteRoom(ctx, id); err != nil {
		r.logger.Warn("failed to delete mirrored room",
			slog.String("room", string(id)),
			slog.Any("error", err),
		)
	}
}
