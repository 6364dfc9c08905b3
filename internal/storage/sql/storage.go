package sql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mcoot/seedroom/internal/model"
	"github.com/mcoot/seedroom/internal/storage"
)

// Storage mirrors identities and rooms into a relational schema through GORM
type Storage struct {
	db      *gorm.DB
	lookups *lookupCache
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New connects to MySQL, migrates the schema and seeds the lookup tables
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	s, err := NewWithDB(db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection, migrating and seeding it
func NewWithDB(db *gorm.DB) (*Storage, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	lookups, err := seedLookups(db)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db, lookups: lookups}, nil
}

// Migrate creates or updates every mirror table
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("cannot migrate with nil DB connection")
	}
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("gorm: migrate: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	row := toIdentityRow(player)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "last_seen_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("gorm: save identity: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, token model.PlayerToken) (*model.Player, error) {
	var row identityRow
	err := s.db.WithContext(ctx).Where("token = ?", string(token)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("gorm: get identity: %w", err)
	}
	return row.player(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, token model.PlayerToken) error {
	err := s.db.WithContext(ctx).Where("token = ?", string(token)).Delete(&identityRow{}).Error
	if err != nil {
		return fmt.Errorf("gorm: delete identity: %w", err)
	}
	return nil
}

// Room operations

// SaveRoom upserts the room, its settings row and its full membership
func (s *Storage) SaveRoom(ctx context.Context, rec *model.RoomRecord) error {
	settings, err := s.lookups.settingsRow(rec.Settings)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		creatorID, err := identityID(tx, rec.Creator)
		if err != nil {
			return err
		}

		var room roomRow
		err = tx.Where("hash_code = ?", rec.Seed.Hash).First(&room).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&settings).Error; err != nil {
				return fmt.Errorf("gorm: create settings: %w", err)
			}
			room = roomRow{HashCode: rec.Seed.Hash, SettingsID: settings.ID}
		case err != nil:
			return fmt.Errorf("gorm: find room: %w", err)
		default:
			settings.ID = room.SettingsID
			if err := tx.Save(&settings).Error; err != nil {
				return fmt.Errorf("gorm: update settings: %w", err)
			}
		}

		room.CreatorID = creatorID
		room.ChatURL = rec.Chat.URL
		room.Permalink = rec.Seed.Permalink
		room.CreatedAt = rec.CreatedAt
		room.ExpireTime = rec.ExpiresAt
		if err := tx.Save(&room).Error; err != nil {
			return fmt.Errorf("gorm: save room %s: %w", rec.ID, err)
		}

		if err := tx.Where("room_id = ?", room.ID).Delete(&membershipRow{}).Error; err != nil {
			return fmt.Errorf("gorm: clear membership: %w", err)
		}
		if len(rec.Members) == 0 {
			return nil
		}
		rows := make([]membershipRow, 0, len(rec.Members))
		for _, m := range rec.Members {
			playerID, err := identityID(tx, m.Token)
			if err != nil {
				return err
			}
			rows = append(rows, membershipRow{
				RoomID:        room.ID,
				PlayerID:      playerID,
				JoinedAt:      m.JoinedAt,
				FinishSeconds: finishSeconds(m.FinishTime),
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("gorm: save membership: %w", err)
		}
		return nil
	})
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.RoomRecord, error) {
	db := s.db.WithContext(ctx)
	hash := hashFromRoomID(id)

	var room roomRow
	if err := db.Where("hash_code = ?", hash).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: get room %s: %w", id, err)
	}

	var settingsData settingsRow
	if err := db.First(&settingsData, room.SettingsID).Error; err != nil {
		return nil, fmt.Errorf("gorm: get settings for room %s: %w", id, err)
	}
	settings, err := s.lookups.settings(settingsData)
	if err != nil {
		return nil, err
	}

	var members []membershipRow
	if err := db.Where("room_id = ?", room.ID).Order("joined_at, id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("gorm: get membership for room %s: %w", id, err)
	}

	identityIDs := []uint{room.CreatorID}
	for _, m := range members {
		identityIDs = append(identityIDs, m.PlayerID)
	}
	var identities []identityRow
	if err := db.Where("id IN ?", identityIDs).Find(&identities).Error; err != nil {
		return nil, fmt.Errorf("gorm: get identities for room %s: %w", id, err)
	}
	tokens := make(map[uint]model.PlayerToken, len(identities))
	for _, ident := range identities {
		tokens[ident.ID] = model.PlayerToken(ident.Token)
	}

	rec := &model.RoomRecord{
		ID:        model.RoomIDForHash(room.HashCode),
		Settings:  settings,
		Seed:      model.Seed{Hash: room.HashCode, Permalink: room.Permalink, GeneratedAt: room.CreatedAt},
		Chat:      model.ChatChannel{Name: chatNameFromURL(room.ChatURL), URL: room.ChatURL},
		Creator:   tokens[room.CreatorID],
		CreatedAt: room.CreatedAt,
		ExpiresAt: room.ExpireTime,
		Members:   make([]model.Member, 0, len(members)),
	}
	for _, m := range members {
		rec.Members = append(rec.Members, model.Member{
			Token:      tokens[m.PlayerID],
			JoinedAt:   m.JoinedAt,
			FinishTime: finishDuration(m.FinishSeconds),
		})
	}
	return rec, nil
}

// DeleteRoom removes the room with its settings and membership. Deleting an
// unknown room is a no-op.
func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room roomRow
		err := tx.Where("hash_code = ?", hashFromRoomID(id)).First(&room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gorm: find room %s: %w", id, err)
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&membershipRow{}).Error; err != nil {
			return fmt.Errorf("gorm: delete membership: %w", err)
		}
		if err := tx.Delete(&room).Error; err != nil {
			return fmt.Errorf("gorm: delete room: %w", err)
		}
		if err := tx.Delete(&settingsRow{}, room.SettingsID).Error; err != nil {
			return fmt.Errorf("gorm: delete settings: %w", err)
		}
		return nil
	})
}

// identityID returns the row ID for a token, inserting a bare identity when
// the player was never mirrored
func identityID(tx *gorm.DB, token model.PlayerToken) (uint, error) {
	row := identityRow{Token: string(token)}
	if err := tx.Where("token = ?", string(token)).FirstOrCreate(&row).Error; err != nil {
		return 0, fmt.Errorf("gorm: identity %s: %w", token, err)
	}
	return row.ID, nil
}
