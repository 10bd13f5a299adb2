package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour/internal/api/request"
	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/middleware"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	streams        *hub.Manager
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, streams *hub.Manager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		streams:        streams,
		logger:         logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	players := request.ToPlayers(req.Players)
	session, err := h.gameController.CreateGame(r.Context(), players, game.Config{
		Width:  req.Width,
		Height: req.Height,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	g := response.GameFromSession(session)
	response.Created(w, response.GamePath(g.ID), g)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	games := make([]response.Game, len(sessions))
	for i, s := range sessions {
		games[i] = response.GameFromSession(s)
	}
	response.JSON(w, http.StatusOK, response.GameList{Games: games})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.GetSession(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSession(session))
}

// Delete handles DELETE /api/v1/games/{id}. Watchers of the game are
// disconnected.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.gameController.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	h.streams.RemoveHub(id)

	response.NoContent(w)
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	out, err := h.gameController.PlacePiece(r.Context(), id, req.Column)
	if err != nil {
		middleware.Logger(r.Context(), h.logger).Debug("move rejected",
			slog.String("game_id", string(id)),
			slog.Int("column", req.Column),
			slog.String("error", err.Error()),
		)
		WriteError(w, err)
		return
	}

	g := response.GameFromSnapshot(id, out.Snapshot, session.CreatedAt, session.UpdatedAt())

	response.JSON(w, http.StatusOK, response.MoveResponse{
		PlacedIndex: out.PlacedIndex,
		Column:      out.Column,
		Row:         out.Row,
		Status:      response.StatusFromModel(out.Status, out.Snapshot.WinnerIndex, g.Players),
		Game:        g,
	})
}

// Cell handles GET /api/v1/games/{id}/cells/{index}
func (h *GameHandler) Cell(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.GetSession(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("Index must be an integer"))
		return
	}

	snap := session.Snapshot()
	if idx < 0 || idx >= len(snap.Cells) {
		WriteError(w, fmt.Errorf("index %d: %w", idx, model.ErrIndexOutOfBounds))
		return
	}

	resp := response.CellResponse{Index: idx}
	if view := snap.Cells[idx]; view != nil {
		resp.Piece = &response.Piece{
			Player: response.PlayerFromModel(view.PlayerIndex, view.Player),
		}
	}
	response.JSON(w, http.StatusOK, resp)
}

// Rematch handles POST /api/v1/games/{id}/rematch
func (h *GameHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.Rematch(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	g := response.GameFromSession(session)
	response.Created(w, response.GamePath(g.ID), g)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
