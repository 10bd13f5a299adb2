package sse

import (
	"bytes"
	"context"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/web/templates/components"
)

// RenderGameUpdate renders the board and status as out-of-band fragments
// for the game page
func RenderGameUpdate(ctx context.Context, id model.GameID, snap game.Snapshot) (string, error) {
	var board bytes.Buffer
	if err := components.Board(id, snap).Render(ctx, &board); err != nil {
		return "", err
	}

	var status bytes.Buffer
	if err := components.GameStatus(id, snap).Render(ctx, &status); err != nil {
		return "", err
	}

	return WrapForOOBSwap("board", board.String()) + WrapForOOBSwap("game-status", status.String()), nil
}

// RenderRematch renders the fragment that moves watchers to the new game
func RenderRematch(next model.GameID) string {
	return `<script>window.location.href = "` + components.GamePath(next) + `";</script>`
}
