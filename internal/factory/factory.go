package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	apihandler "github.com/mcoot/connectfour/internal/api/handler"
	"github.com/mcoot/connectfour/internal/dependencies/clock"
	"github.com/mcoot/connectfour/internal/dependencies/ids"
	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/storage/memory"
	"github.com/mcoot/connectfour/internal/web/sse"
)

// App contains all wired application components
type App struct {
	// Storage
	Store game.Store

	// External dependencies
	Clock clock.Clock
	IDs   ids.IDs

	// Services
	GameController *game.Controller

	// Push channels: websocket watchers of the JSON API and SSE
	// watchers of the web pages
	APIStreams *hub.Manager
	WebStreams *hub.Manager

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Defaults are the board dimensions used when a request leaves them
	// unset. If zero, defaults to game.DefaultConfig()
	Defaults game.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	defaults := cfg.Defaults
	if defaults == (game.Config{}) {
		defaults = game.DefaultConfig()
	}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("default board: %w", err)
	}

	return newWithDependencies(memory.New(), clock.New(), ids.New(), defaults, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store game.Store, clk clock.Clock, gen ids.IDs, defaults game.Config, logger *slog.Logger) *App {
	gameController := game.NewController(store, clk, gen, defaults, logger.With(slog.String("component", "games")))
	apiStreams := hub.NewManager("ws-hub", logger)
	webStreams := hub.NewManager("sse-hub", logger)

	gameController.AddNotifier(apihandler.NewStreamNotifier(gameController, apiStreams, logger))
	gameController.AddNotifier(sse.NewBroadcaster(webStreams, gameController, logger))

	return &App{
		Store:          store,
		Clock:          clk,
		IDs:            gen,
		GameController: gameController,
		APIStreams:     apiStreams,
		WebStreams:     webStreams,
		Logger:         logger,
	}
}

// CleanupHubs closes push hubs that no longer have watchers
func (a *App) CleanupHubs() int {
	return a.APIStreams.CleanupEmptyHubs() + a.WebStreams.CleanupEmptyHubs()
}

// RunHubJanitor calls CleanupHubs every interval until ctx is done
func (a *App) RunHubJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.CleanupHubs()
		case <-ctx.Done():
			return
		}
	}
}
