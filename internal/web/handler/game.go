package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/web/middleware"
	"github.com/mcoot/connectfour/internal/web/sse"
	"github.com/mcoot/connectfour/internal/web/templates/components"
	"github.com/mcoot/connectfour/internal/web/templates/layout"
	"github.com/mcoot/connectfour/internal/web/templates/pages"
)

// Number of seats on the new game form
const formSeats = 2

// GameHandler handles game pages and actions
type GameHandler struct {
	gameController game.ControllerInterface
	streams        *hub.Manager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, streams *hub.Manager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		streams:        streams,
		logger:         logger,
	}
}

// Create handles the new game form
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	width, errW := optionalInt(r.FormValue("width"))
	height, errH := optionalInt(r.FormValue("height"))
	if errW != nil || errH != nil {
		middleware.SetFlash(w, middleware.FlashError, "Board size must be a number")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session, err := h.gameController.CreateGame(r.Context(), seatsFromForm(r), game.Config{
		Width:  width,
		Height: height,
	})
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not start game: "+flashForError(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, components.GamePath(session.ID), http.StatusSeeOther)
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	snap := session.Snapshot()
	data := pages.GameData{
		PageData: layout.PageData{
			Title: components.StatusText(snap),
			Flash: middleware.GetFlash(r.Context()),
		},
		ID:       id,
		Snapshot: snap,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Drop handles a drop into a column. HTMX requests get the fresh board
// back as out-of-band fragments; plain form posts are redirected.
func (h *GameHandler) Drop(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	path := components.GamePath(id)

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, path, "Invalid form data")
		return
	}

	column, err := strconv.Atoi(strings.TrimSpace(r.FormValue("column")))
	if err != nil {
		h.fail(w, r, path, "Invalid column")
		return
	}

	if _, err := h.gameController.PlacePiece(r.Context(), id, column); err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			h.fail(w, r, "/", flashForError(err))
			return
		}
		h.fail(w, r, path, flashForError(err))
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		h.fail(w, r, "/", flashForError(err))
		return
	}
	html, err := sse.RenderGameUpdate(r.Context(), id, session.Snapshot())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// Rematch replaces a finished game with a fresh one
func (h *GameHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	next, err := h.gameController.Rematch(r.Context(), gameID(r))
	if err != nil {
		h.fail(w, r, "/", "Could not start rematch: "+flashForError(err))
		return
	}

	h.redirect(w, r, components.GamePath(next.ID))
}

// Delete discards a game and disconnects its watchers
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.gameController.DeleteGame(r.Context(), id); err != nil {
		h.fail(w, r, "/", flashForError(err))
		return
	}
	h.streams.RemoveHub(id)

	middleware.SetFlash(w, middleware.FlashInfo, "Game deleted")
	h.redirect(w, r, "/")
}

// Events streams board updates for a game
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.gameController.GetSession(r.Context(), id); err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	sse.ServeSSE(w, r, h.streams.GetOrCreateHub(id), r.RemoteAddr)
}

func (h *GameHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = pages.NotFound(layout.PageData{
		Title: "Not found",
		Flash: middleware.GetFlash(r.Context()),
	}).Render(r.Context(), w)
}

// fail flashes message and sends the browser to location
func (h *GameHandler) fail(w http.ResponseWriter, r *http.Request, location, message string) {
	middleware.SetFlash(w, middleware.FlashError, message)
	h.redirect(w, r, location)
}

// redirect uses HX-Redirect for HTMX requests and a 303 otherwise
func (h *GameHandler) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// seatsFromForm reads playerN_name and playerN_color fields. Blank names
// become "Player N"; blank colors take the palette entry for the seat.
func seatsFromForm(r *http.Request) []*model.Player {
	players := make([]*model.Player, 0, formSeats)
	for i := 0; i < formSeats; i++ {
		prefix := fmt.Sprintf("player%d_", i+1)

		name := strings.TrimSpace(r.FormValue(prefix + "name"))
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}

		color := model.Palette[i%len(model.Palette)]
		if label := r.FormValue(prefix + "color"); strings.TrimSpace(label) != "" {
			color = model.ColorFor(label, "")
		}
		players = append(players, model.NewPlayer(name, color))
	}
	return players
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
