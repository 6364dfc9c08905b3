package sql

import (
	"strings"
	"time"

	"github.com/mcoot/seedroom/internal/model"
)

type identityRow struct {
	ID         uint   `gorm:"primaryKey"`
	Token      string `gorm:"size:64;not null;uniqueIndex"`
	Name       string `gorm:"size:64;not null"`
	CreatedAt  time.Time
	LastSeenAt time.Time
}

func (identityRow) TableName() string { return "identities" }

// LookupRow is the shape shared by every settings category table
type LookupRow struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"column:key_name;size:32;not null;uniqueIndex"`
	Description string `gorm:"size:64;not null"`
}

type difficultyRow struct{ LookupRow }

func (difficultyRow) TableName() string { return "difficulties" }

type goalRow struct{ LookupRow }

func (goalRow) TableName() string { return "goals" }

type logicRow struct{ LookupRow }

func (logicRow) TableName() string { return "logics" }

type modeRow struct{ LookupRow }

func (modeRow) TableName() string { return "modes" }

type variationRow struct{ LookupRow }

func (variationRow) TableName() string { return "variations" }

type weaponsRow struct{ LookupRow }

func (weaponsRow) TableName() string { return "weapons" }

type settingsRow struct {
	ID           uint `gorm:"primaryKey"`
	DifficultyID uint `gorm:"not null;index"`
	GoalID       uint `gorm:"not null;index"`
	LogicID      uint `gorm:"not null;index"`
	ModeID       uint `gorm:"not null;index"`
	VariationID  uint `gorm:"not null;index"`
	WeaponsID    uint `gorm:"not null;index"`
	Enemizer     bool
	Spoilers     bool
	Tournament   bool
	Lang         string `gorm:"size:16;not null"`
}

func (settingsRow) TableName() string { return "settings" }

type roomRow struct {
	ID         uint   `gorm:"primaryKey"`
	HashCode   string `gorm:"size:64;not null;uniqueIndex"`
	SettingsID uint   `gorm:"not null"`
	CreatorID  uint   `gorm:"not null;index"`
	ChatURL    string `gorm:"size:255"`
	Permalink  string `gorm:"size:255"`
	CreatedAt  time.Time
	ExpireTime time.Time `gorm:"index"`
}

func (roomRow) TableName() string { return "rooms" }

type membershipRow struct {
	ID            uint `gorm:"primaryKey"`
	RoomID        uint `gorm:"not null;uniqueIndex:idx_room_player"`
	PlayerID      uint `gorm:"not null;uniqueIndex:idx_room_player"`
	JoinedAt      time.Time
	FinishSeconds *int64
}

func (membershipRow) TableName() string { return "room_membership" }

// allModels lists every table in migration order
func allModels() []any {
	return []any{
		&identityRow{},
		&difficultyRow{},
		&goalRow{},
		&logicRow{},
		&modeRow{},
		&variationRow{},
		&weaponsRow{},
		&settingsRow{},
		&roomRow{},
		&membershipRow{},
	}
}

func toIdentityRow(p *model.Player) identityRow {
	return identityRow{
		Token:      string(p.Token),
		Name:       p.Name,
		CreatedAt:  p.CreatedAt,
		LastSeenAt: p.LastSeenAt,
	}
}

func (r identityRow) player() *model.Player {
	return &model.Player{
		Token:      model.PlayerToken(r.Token),
		Name:       r.Name,
		CreatedAt:  r.CreatedAt,
		LastSeenAt: r.LastSeenAt,
	}
}

func finishSeconds(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	s := int64(*d / time.Second)
	return &s
}

func finishDuration(s *int64) *time.Duration {
	if s == nil {
		return nil
	}
	d := time.Duration(*s) * time.Second
	return &d
}

func hashFromRoomID(id model.RoomID) string {
	return strings.TrimPrefix(string(id), model.RoomIDPrefix)
}

func chatNameFromURL(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}
