package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour/internal/api/handler"
	"github.com/mcoot/connectfour/internal/api/middleware"
	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/dependencies/ids"
	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	IDs            ids.IDs
	GameController game.ControllerInterface
	// Streams holds the websocket hubs; StreamNotifier must be registered
	// on GameController for watchers to see moves
	Streams *hub.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	streams := cfg.Streams
	if streams == nil {
		streams = hub.NewManager("ws", cfg.Logger)
	}

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, streams, cfg.Logger)
	streamHandler := handler.NewStreamHandler(cfg.GameController, streams, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger, cfg.IDs))

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/cells/{index}", gameHandler.Cell).Methods(http.MethodGet)
	games.HandleFunc("/{id}/rematch", gameHandler.Rematch).Methods(http.MethodPost)
	games.HandleFunc("/{id}/ws", streamHandler.ServeWS).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
