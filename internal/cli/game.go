package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/api/request"
	"github.com/mcoot/connectfour/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDropCmd())
	cmd.AddCommand(newGameCellCmd())
	cmd.AddCommand(newGameRematchCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameWatchCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var (
		width   int
		height  int
		players []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Example: `  c4 game create
  c4 game create --width 9 --height 7 --player Alice:yellow --player Bob:#1E90FF`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seats, err := parseSeats(players)
			if err != nil {
				return err
			}

			req := request.CreateGameRequest{
				Players: seats,
				Width:   width,
				Height:  height,
			}
			var result response.Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Number of columns (default: server setting)")
	cmd.Flags().IntVar(&height, "height", 0, "Number of rows (default: server setting)")
	cmd.Flags().StringArrayVarP(&players, "player", "p", nil, "Player as name or name:color, repeatable")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get(response.GamePath(args[0]), &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <id> <column>",
		Short: "Drop the current player's piece into a column (1-indexed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid column: %w", err)
			}

			req := request.MoveRequest{Column: column}
			var result response.MoveResponse

			if err := client.Post(response.GamePath(args[0])+"/moves", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell <id> <index>",
		Short: "Show the piece in a slot by flat index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index: %w", err)
			}

			var result response.CellResponse

			if err := client.Get(fmt.Sprintf("%s/cells/%d", response.GamePath(args[0]), idx), &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameRematchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rematch <id>",
		Short: "Replace a game with a fresh one for the same players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post(response.GamePath(args[0])+"/rematch", nil, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(response.GamePath(args[0])); err != nil {
				return err
			}

			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
