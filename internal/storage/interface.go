package storage

import (
	"context"

	"github.com/mcoot/seedroom/internal/model"
)

// Storage is a write-through mirror of coordinator state. The in-memory
// registries stay authoritative: nothing is read back at start-up, and
// callers treat mirror failures as non-fatal.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, token model.PlayerToken) (*model.Player, error)
	DeletePlayer(ctx context.Context, token model.PlayerToken) error

	// Room operations
	SaveRoom(ctx context.Context, room *model.RoomRecord) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.RoomRecord, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// Close releases the backend's connections
	Close() error
}
