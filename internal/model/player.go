package model

import (
	"time"
	"unicode/utf8"
)

// MaxNameLength is the longest display name a player may choose
const MaxNameLength = 12

// PlayerToken is the opaque bearer credential identifying a player
type PlayerToken string

// Player represents a participant known to the coordinator
type Player struct {
	Token      PlayerToken
	Name       string
	CreatedAt  time.Time
	LastSeenAt time.Time // Refreshed on every resolve, drives idle eviction
}

// ValidateName checks a display name against the naming rules
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "Name cannot be empty."}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return &ValidationError{Field: "name", Message: "Name must contain 12 characters or less."}
	}
	return nil
}
