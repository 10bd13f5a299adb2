package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

// Broadcaster pushes re-rendered game fragments to browsers watching a game
type Broadcaster struct {
	streams        *hub.Manager
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(streams *hub.Manager, gameController game.ControllerInterface, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		streams:        streams,
		gameController: gameController,
		logger:         logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify implements game.Notifier
func (b *Broadcaster) Notify(ctx context.Context, id model.GameID, event model.Event) {
	h := b.streams.GetHub(id)
	if h == nil {
		return
	}

	if event.Type == model.EventRematch {
		BroadcastEvent(h, EventRematch, RenderRematch(event.NextGameID))
		return
	}

	session, err := b.gameController.GetSession(ctx, id)
	if err != nil {
		return
	}

	html, err := RenderGameUpdate(ctx, id, session.Snapshot())
	if err != nil {
		b.logger.Error("sse failed to render board",
			slog.String("game_id", string(id)),
			slog.Any("error", err))
		return
	}
	BroadcastEvent(h, EventBoardUpdate, html)
}

var _ game.Notifier = (*Broadcaster)(nil)
