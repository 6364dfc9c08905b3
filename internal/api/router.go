package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/seedroom/internal/api/handler"
	"github.com/mcoot/seedroom/internal/api/middleware"
	"github.com/mcoot/seedroom/internal/dependencies/clock"
	requestlog "github.com/mcoot/seedroom/internal/middleware"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/rooms"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Clock      clock.Clock
	Identities *identity.Registry
	Rooms      *rooms.Registry
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the API under /api/v1 on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Identities, cfg.Logger)
	roomHandler := handler.NewRoomHandler(cfg.Rooms, cfg.Identities, cfg.Clock, cfg.Logger)
	infoHandler := handler.NewInfoHandler(cfg.Rooms, cfg.Identities)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Identities)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(requestlog.Logging(cfg.Logger))

	// Public routes
	api.HandleFunc("/health", infoHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/settings", infoHandler.Settings).Methods(http.MethodGet)
	api.HandleFunc("/stats", infoHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me", playerHandler.Rename).Methods(http.MethodPatch)

	// Room routes (all require auth)
	roomRoutes := api.PathPrefix("/rooms").Subrouter()
	roomRoutes.Use(authMiddleware)
	roomRoutes.HandleFunc("", roomHandler.List).Methods(http.MethodGet)
	roomRoutes.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/{id}", roomHandler.Get).Methods(http.MethodGet)
	roomRoutes.HandleFunc("/{id}", roomHandler.Delete).Methods(http.MethodDelete)
	roomRoutes.HandleFunc("/{id}/join", roomHandler.Join).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/{id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/{id}/time", roomHandler.RecordTime).Methods(http.MethodPut)
}
