package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/middleware"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// StreamHandler pushes game events to websocket watchers
type StreamHandler struct {
	gameController game.ControllerInterface
	streams        *hub.Manager
	logger         *slog.Logger
	upgrader       websocket.Upgrader
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(gameController game.ControllerInterface, streams *hub.Manager, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		gameController: gameController,
		streams:        streams,
		logger:         logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeWS handles GET /api/v1/games/{id}/ws
func (h *StreamHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	logger := middleware.Logger(r.Context(), h.logger).With(slog.String("game_id", string(id)))

	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = conn.Close() }()

	client := hub.NewClient(r.RemoteAddr)
	gameHub := h.streams.GetOrCreateHub(id)
	if !gameHub.Register(client) {
		return
	}
	defer gameHub.Unregister(client)

	snapshot, err := json.Marshal(response.SnapshotMessage(response.GameFromSession(session)))
	if err != nil {
		logger.Error("failed to encode snapshot", slog.String("error", err.Error()))
		return
	}
	if err := writeFrame(conn, websocket.TextMessage, snapshot); err != nil {
		return
	}

	// Watchers never send anything; reading keeps pongs flowing and
	// notices when the peer goes away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("websocket closed unexpectedly", slog.String("error", err.Error()))
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.Messages():
			if !ok {
				_ = writeFrame(conn, websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := writeFrame(conn, websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := writeFrame(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, messageType int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(messageType, data)
}

// StreamNotifier forwards controller events to the websocket hub of the
// game they belong to
type StreamNotifier struct {
	gameController game.ControllerInterface
	streams        *hub.Manager
	logger         *slog.Logger
}

// NewStreamNotifier creates a notifier broadcasting to streams
func NewStreamNotifier(gameController game.ControllerInterface, streams *hub.Manager, logger *slog.Logger) *StreamNotifier {
	return &StreamNotifier{
		gameController: gameController,
		streams:        streams,
		logger:         logger,
	}
}

// Notify implements game.Notifier
func (n *StreamNotifier) Notify(ctx context.Context, id model.GameID, event model.Event) {
	gameHub := n.streams.GetHub(id)
	if gameHub == nil {
		return
	}

	var current *response.Game
	if session, err := n.gameController.GetSession(ctx, id); err == nil {
		g := response.GameFromSession(session)
		current = &g
	}

	data, err := json.Marshal(response.EventMessage(id, event, current))
	if err != nil {
		n.logger.Error("failed to encode stream message",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}
	gameHub.Broadcast(data)
}

var _ game.Notifier = (*StreamNotifier)(nil)
