package memory

import (
	"context"
	"sync"

	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerToken]model.Player
	rooms   map[model.RoomID]*model.RoomRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerToken]model.Player),
		rooms:   make(map[model.RoomID]*model.RoomRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.Token] = *player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, token model.PlayerToken) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[token]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, token model.PlayerToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, token)
	return nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.RoomRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = copyRecord(room)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return copyRecord(room), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

// Close is a no-op for memory storage
func (s *Storage) Close() error {
	return nil
}

// Counts returns the number of stored players and rooms
func (s *Storage) Counts() (players, rooms int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), len(s.rooms)
}

func copyRecord(r *model.RoomRecord) *model.RoomRecord {
	cp := *r
	cp.Members = make([]model.Member, len(r.Members))
	copy(cp.Members, r.Members)
	return &cp
}
