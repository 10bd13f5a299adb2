package cli

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/api/request"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/tui"
)

func newPlayCmd() *cobra.Command {
	var (
		width   int
		height  int
		players []string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in this terminal",
		Long: `Play Connect Four on this machine, passing the keyboard between players.

Select a column with the arrow keys or its number, drop with Enter or Space,
press r for a new game once this one is over and q to quit.`,
		Example: `  c4 play
  c4 play --width 9 --height 7 --player Alice:yellow --player Bob:blue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seats, err := parseSeats(players)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			defer screen.Fini()

			// Log lines would corrupt the screen
			logger := slog.New(slog.DiscardHandler)

			app, err := tui.New(screen, request.ToPlayers(seats), game.Config{
				Width:  width,
				Height: height,
			}, logger)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	defaults := game.DefaultConfig()
	cmd.Flags().IntVar(&width, "width", defaults.Width, "Number of columns")
	cmd.Flags().IntVar(&height, "height", defaults.Height, "Number of rows")
	cmd.Flags().StringArrayVarP(&players, "player", "p", nil, "Player as name or name:color, repeatable")

	return cmd
}
