package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/web/middleware"
	"github.com/mcoot/connectfour/internal/web/templates/components"
	"github.com/mcoot/connectfour/internal/web/templates/layout"
	"github.com/mcoot/connectfour/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController game.ControllerInterface, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Home renders the new game form and the list of games
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.gameController.ListGames(r.Context())
	if err != nil {
		h.logger.Error("failed to list games", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	games := make([]components.GameSummary, len(sessions))
	for i, s := range sessions {
		games[i] = components.GameSummary{ID: s.ID, Snapshot: s.Snapshot()}
	}

	defaults := h.gameController.Defaults()
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
		Games:   games,
		Width:   defaults.Width,
		Height:  defaults.Height,
		Palette: model.Palette,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
