package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour/internal/dependencies/ids"
	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/web/handler"
	"github.com/mcoot/connectfour/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	IDs            ids.IDs
	GameController game.ControllerInterface
	// Streams holds the SSE hubs; the sse.Broadcaster must be registered
	// on GameController for pages to update live
	Streams   *hub.Manager
	StaticDir string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, cfg.IDs))

	// Create SSE hub manager if not provided
	streams := cfg.Streams
	if streams == nil {
		streams = hub.NewManager("sse", cfg.Logger)
	}

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, streams, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// The event stream is long-lived and never shows a flash
	r.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/drop", gameHandler.Drop).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/rematch", gameHandler.Rematch).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/delete", gameHandler.Delete).Methods(http.MethodPost)

	return r
}
