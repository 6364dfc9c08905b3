package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/seedroom/internal/api"
	"github.com/mcoot/seedroom/internal/factory"
	"github.com/mcoot/seedroom/internal/web"
)

func main() {
	// A .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", slog.String("error", err.Error()))
	}

	cfg, err := loadConfig(osGetenv)

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg.App.Logger = logger

	// Create application factory
	app, err := factory.New(cfg.App)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// API first so /api/v1 is matched before the site's catch-all subrouter
	router := mux.NewRouter()
	api.Register(router, api.RouterConfig{
		Logger:     logger,
		Clock:      app.Clock,
		Identities: app.Identities,
		Rooms:      app.Rooms,
	})
	web.Register(router, web.RouterConfig{
		Logger:     logger,
		Clock:      app.Clock,
		Identities: app.Identities,
		Rooms:      app.Rooms,
		StaticDir:  findStaticDir(),
	})

	server := api.NewServer(router, cfg.Server, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		return app.Janitor.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
