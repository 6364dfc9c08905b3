package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	requestlog "github.com/mcoot/seedroom/internal/middleware"
	"github.com/mcoot/seedroom/internal/services/identity"
	"github.com/mcoot/seedroom/internal/services/rooms"
	"github.com/mcoot/seedroom/internal/web/handler"
	"github.com/mcoot/seedroom/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger     *slog.Logger
	Clock      clock.Clock
	Identities *identity.Registry
	Rooms      *rooms.Registry
	StaticDir  string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the site on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	// Create middleware
	flashMiddleware := middleware.Flash()
	csrfMiddleware := middleware.CSRF()
	authMiddleware := middleware.Auth(cfg.Identities)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.Identities)

	site := r.NewRoute().Subrouter()
	site.Use(middleware.Recovery(cfg.Logger))
	site.Use(requestlog.Logging(cfg.Logger))

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Identities, cfg.Logger)
	roomHandler := handler.NewRoomHandler(cfg.Rooms, cfg.Identities, cfg.Clock, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		site.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing player info in nav)
	public := site.NewRoute().Subrouter()
	public.Use(csrfMiddleware)
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/name", homeHandler.SetName).Methods(http.MethodPost)
	public.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)

	// Protected routes (require a name)
	protected := site.NewRoute().Subrouter()
	protected.Use(csrfMiddleware)
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/create", roomHandler.CreateForm).Methods(http.MethodGet)
	protected.HandleFunc("/create", roomHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/room/{id}", roomHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/room/{id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	protected.HandleFunc("/room/{id}/remove", roomHandler.Remove).Methods(http.MethodPost)
	protected.HandleFunc("/room/{id}/time", roomHandler.Time).Methods(http.MethodPost)
}
