package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/model"
)

func newGameWatchCmd() *cobra.Command {
	var untilEnd bool

	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Stream live events for a game",
		Long: `Connect to the game's websocket stream and print every event.

The first message is a snapshot of the game. After that one message arrives
per move:
  - turn_changed: a piece was dropped and play passes on
  - game_won: the move completed a line of four
  - game_drawn: the board filled without a winner
  - rematch: the game was replaced; next_game_id names the new one

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchGame(ctx, args[0], untilEnd)
		},
	}

	cmd.Flags().BoolVar(&untilEnd, "until-end", false, "Exit once the game is won, drawn or replaced")

	return cmd
}

func watchGame(ctx context.Context, id string, untilEnd bool) error {
	if cfg.Output == "text" {
		out.PrintMessage("Watching game " + id)
	}

	return client.Watch(ctx, cfg.WebSocketURL(response.GamePath(id)+"/ws"), func(msg response.StreamMessage) error {
		out.PrintStream(msg, time.Now())
		if untilEnd && isFinal(msg) {
			return ErrStopWatching
		}
		return nil
	})
}

func isFinal(msg response.StreamMessage) bool {
	switch msg.Type {
	case string(model.EventGameWon), string(model.EventGameDrawn), string(model.EventRematch):
		return true
	case response.StreamSnapshot:
		return msg.Status != string(model.GameStateInProgress)
	}
	return false
}
