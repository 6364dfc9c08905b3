package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/seedroom/internal/api"
	"github.com/mcoot/seedroom/internal/factory"
	redisstorage "github.com/mcoot/seedroom/internal/storage/redis"
	sqlstorage "github.com/mcoot/seedroom/internal/storage/sql"
)

// serverConfig is everything main needs, read from the environment
type serverConfig struct {
	LogLevel slog.Level
	Server   api.ServerConfig
	App      factory.Config
}

// loadConfig reads configuration through getenv so tests can supply their own
func loadConfig(getenv func(string) string) (serverConfig, error) {
	cfg := serverConfig{
		LogLevel: slog.LevelInfo,
		Server:   api.DefaultServerConfig(),
		App: factory.Config{
			StorageType:  getenv("STORAGE_TYPE"),
			SeedProvider: getenv("SEED_PROVIDER"),
		},
	}
	env := envReader{getenv: getenv}

	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	cfg.Server.Port = env.int("PORT", cfg.Server.Port)

	switch cfg.App.StorageType {
	case factory.StorageTypeRedis:
		redisURL := getenv("REDIS_URL")
		if redisURL == "" {
			return cfg, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.App.RedisConfig = &redisCfg
	case factory.StorageTypeSQL:
		dsn := getenv("DATABASE_DSN")
		if dsn == "" {
			return cfg, fmt.Errorf("DATABASE_DSN required when STORAGE_TYPE=sql")
		}
		sqlCfg := sqlstorage.DefaultConfig()
		sqlCfg.DSN = dsn
		cfg.App.SQLConfig = &sqlCfg
	}

	if u := getenv("SEED_API_URL"); u != "" {
		cfg.App.SeedConfig.BaseURL = strings.TrimSuffix(u, "/")
	}
	cfg.App.RoomsConfig.SeedTimeout = env.duration("SEED_TIMEOUT")
	cfg.App.RoomsConfig.MaxRooms = env.int("MAX_ROOMS", 0)
	cfg.App.RoomsConfig.RoomTTL = env.duration("ROOM_TTL")
	cfg.App.IdentityConfig.IdleTTL = env.duration("IDENTITY_IDLE_TTL")
	cfg.App.JanitorConfig.SweepInterval = env.duration("SWEEP_INTERVAL")

	return cfg, env.err
}

// envReader parses typed values, keeping the first error
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) int(key string, def int) int {
	raw := e.getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s: %w", key, err)
	}
	return n
}

// duration returns zero when unset so component defaults apply
func (e *envReader) duration(key string) time.Duration {
	raw := e.getenv(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s: %w", key, err)
	}
	return d
}

func osGetenv(key string) string {
	return os.Getenv(key)
}
