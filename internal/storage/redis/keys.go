package redis

import (
	"fmt"

	"github.com/mcoot/seedroom/internal/model"
)

// Key prefix for all coordinator data
const keyPrefix = "seedroom"

// playerKey returns the Redis key for a Player
func playerKey(token model.PlayerToken) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, token)
}

// roomKey returns the Redis key for a room record
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}
