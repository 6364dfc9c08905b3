package model

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// RoomIDPrefix is prepended to a seed hash to form a room identifier
const RoomIDPrefix = "alttpr_"

// RoomID is the public identifier of a room
type RoomID string

// RoomIDForHash derives the identifier of the room hosting the given seed
func RoomIDForHash(hash string) RoomID {
	return RoomID(RoomIDPrefix + hash)
}

// Member is a player's membership in a room
type Member struct {
	Token      PlayerToken
	JoinedAt   time.Time
	FinishTime *time.Duration // nil until the player reports a time
}

// Room is a single game session. Its identity, settings and deadline are
// fixed at construction; membership is guarded by the room's own lock so it
// can change without holding any registry-wide lock.
type Room struct {
	ID        RoomID
	Settings  Settings
	Seed      Seed
	Chat      ChatChannel
	Creator   PlayerToken
	CreatedAt time.Time
	ExpiresAt time.Time

	mu      sync.RWMutex
	members map[PlayerToken]*Member
	closed  bool
}

// NewRoom builds a room from already generated collaborator outputs.
// The creator is the first member.
func NewRoom(settings Settings, seed Seed, chat ChatChannel, creator PlayerToken, now time.Time, ttl time.Duration) *Room {
	return &Room{
		ID:        RoomIDForHash(seed.Hash),
		Settings:  settings,
		Seed:      seed,
		Chat:      chat,
		Creator:   creator,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		members: map[PlayerToken]*Member{
			creator: {Token: creator, JoinedAt: now},
		},
	}
}

// AddMember adds a player to the room. Adding an existing member is a no-op.
func (r *Room) AddMember(token PlayerToken, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	if _, ok := r.members[token]; !ok {
		r.members[token] = &Member{Token: token, JoinedAt: now}
	}
	return nil
}

// RemoveMember removes a player from the room. Removing an absent member is
// a no-op, and removing the creator leaves the room in place.
func (r *Room) RemoveMember(token PlayerToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	delete(r.members, token)
	return nil
}

// RecordFinish stores a member's finishing time, replacing any earlier one
func (r *Room) RecordFinish(token PlayerToken, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	m, ok := r.members[token]
	if !ok {
		return ErrNotInRoom
	}
	m.FinishTime = &d
	return nil
}

// HasMember returns true if the player is in the room
func (r *Room) HasMember(token PlayerToken) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[token]
	return ok
}

// MemberCount returns the number of members
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Members returns a copy of the membership ordered by join time
func (r *Room) Members() []Member {
	r.mu.RLock()
	result := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		cp := *m
		if m.FinishTime != nil {
			d := *m.FinishTime
			cp.FinishTime = &d
		}
		result = append(result, cp)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].JoinedAt.Equal(result[j].JoinedAt) {
			return result[i].Token < result[j].Token
		}
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})
	return result
}

// IsCreator returns true if the player created the room
func (r *Room) IsCreator(token PlayerToken) bool {
	return r.Creator == token
}

// IsExpired returns true once now has reached the deadline
func (r *Room) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Remaining returns the time left before expiry, never negative
func (r *Room) Remaining(now time.Time) time.Duration {
	d := r.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Countdown returns the remaining time split for display
func (r *Room) Countdown(now time.Time) Countdown {
	return NewCountdown(r.Remaining(now))
}

// Close marks the room as removed; later membership changes fail.
// It waits for any in-flight mutation to finish.
func (r *Room) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// IsClosed returns true once the room has been removed from its registry
func (r *Room) IsClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Countdown is a duration decomposed into whole hours, minutes and seconds
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
}

// NewCountdown splits d, clamping negative durations to zero
func NewCountdown(d time.Duration) Countdown {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Countdown{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

func (c Countdown) String() string {
	return fmt.Sprintf("%d hours, %d minutes, %d seconds", c.Hours, c.Minutes, c.Seconds)
}

// FormatFinish renders a finishing time as h:mm:ss
func FormatFinish(d time.Duration) string {
	c := NewCountdown(d)
	return fmt.Sprintf("%d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
}

// MaxFinishHours bounds the hours component of a reported finish time
const MaxFinishHours = 99

// ValidateFinishTime checks a reported finishing time and returns it as a duration
func ValidateFinishTime(hours, minutes, seconds int) (time.Duration, error) {
	if hours < 0 || hours > MaxFinishHours {
		return 0, &ValidationError{Field: "time", Message: "Hours must be between 0 and 99."}
	}
	if minutes < 0 || minutes > 59 {
		return 0, &ValidationError{Field: "time", Message: "Minutes must be between 0 and 59."}
	}
	if seconds < 0 || seconds > 59 {
		return 0, &ValidationError{Field: "time", Message: "Seconds must be between 0 and 59."}
	}
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if d == 0 {
		return 0, &ValidationError{Field: "time", Message: "Time cannot be zero."}
	}
	return d, nil
}

// RoomRecord is a point-in-time copy of a room, safe to serialize
type RoomRecord struct {
	ID        RoomID
	Settings  Settings
	Seed      Seed
	Chat      ChatChannel
	Creator   PlayerToken
	Members   []Member
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Record takes a consistent snapshot of the room
func (r *Room) Record() *RoomRecord {
	return &RoomRecord{
		ID:        r.ID,
		Settings:  r.Settings,
		Seed:      r.Seed,
		Chat:      r.Chat,
		Creator:   r.Creator,
		Members:   r.Members(),
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}
