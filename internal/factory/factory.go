package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/dependencies/random"
	"github.com/mcoot/seedroom/internal/services/chat"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/janitor"
	"github.com/mcoot/seedroom/internal/services/rooms"
	"github.com/mcoot/seedroom/internal/services/seed"
	"github.com/mcoot/seedroom/internal/storage"
	"github.com/mcoot/seedroom/internal/storage/memory"
	redisstorage "github.com/mcoot/seedroom/internal/storage/redis"
	sqlstorage "github.com/mcoot/seedroom/internal/storage/sql"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQL    = "sql"
)

// Seed provider constants
const (
	SeedProviderHTTP  = "http"
	SeedProviderLocal = "local"
)

// App contains all wired application components
type App struct {
	// Storage mirror
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Collaborators
	Seeds seed.Provider
	Chat  chat.Provider

	// Services
	Identities *identity.Registry
	Rooms      *rooms.Registry
	Janitor    *janitor.Janitor
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the mirror backend ("memory", "redis" or "sql")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLConfig holds database settings (required if StorageType is "sql")
	SQLConfig *sqlstorage.Config
	// SeedProvider selects seed generation ("http" or "local")
	// If empty, defaults to "http"
	SeedProvider string
	// SeedConfig configures the HTTP seed provider
	SeedConfig seed.HTTPConfig
	// ChatBaseURL overrides the tlk.io root (optional)
	ChatBaseURL string
	// Component configs; zero values fall back to each package's defaults
	RoomsConfig    rooms.Config
	IdentityConfig identity.Config
	JanitorConfig  janitor.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	var seeds seed.Provider
	switch cfg.SeedProvider {
	case "", SeedProviderHTTP:
		seeds = seed.NewHTTPProvider(cfg.SeedConfig, &http.Client{}, clk)
	case SeedProviderLocal:
		seeds = seed.NewLocalProvider(rnd, clk)
	default:
		_ = store.Close()
		return nil, fmt.Errorf("invalid SeedProvider %q: must be 'http' or 'local'", cfg.SeedProvider)
	}

	return newWithDependencies(store, seeds, clk, rnd, cfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisCfg := *cfg.RedisConfig
		if redisCfg.PlayerTTL == 0 {
			redisCfg.PlayerTTL = cfg.IdentityConfig.IdleTTL
		}
		if redisCfg.PlayerTTL == 0 {
			redisCfg.PlayerTTL = identity.DefaultConfig().IdleTTL
		}
		return redisstorage.New(redisCfg)
	case StorageTypeSQL:
		if cfg.SQLConfig == nil {
			return nil, errors.New("SQLConfig required when StorageType is sql")
		}
		return sqlstorage.New(*cfg.SQLConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sql'", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	seeds seed.Provider,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *App {
	chats := chat.NewTlkProvider(cfg.ChatBaseURL)
	identities := identity.New(store, clk, logger, cfg.IdentityConfig)
	roomRegistry := rooms.New(store, seeds, chats, clk, logger, cfg.RoomsConfig)
	sweeper := janitor.New(roomRegistry, identities, clk, logger, cfg.JanitorConfig)

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Seeds:      seeds,
		Chat:       chats,
		Identities: identities,
		Rooms:      roomRegistry,
		Janitor:    sweeper,
	}
}

// Close releases the storage mirror
func (a *App) Close() error {
	return a.Storage.Close()
}
