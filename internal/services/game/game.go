package game

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/board"
	"github.com/mcoot/connectfour/internal/services/scanner"
)

// Config holds the board dimensions for a new game
type Config struct {
	Width  int
	Height int
}

// MaxDimension bounds the width and height of any board
const MaxDimension = 64

// DefaultConfig returns the standard 7 column by 6 row board
func DefaultConfig() Config {
	return Config{Width: 7, Height: 6}
}

// Validate checks both dimensions lie in [1, MaxDimension]
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 || c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("board %dx%d: %w", c.Width, c.Height, model.ErrInvalidDimensions)
	}
	return nil
}

// Outcome reports the result of a successful move
type Outcome struct {
	PlacedIndex int
	Column      int
	Row         int
	Player      *model.Player
	Status      model.Status
	Win         *scanner.Win
	Snapshot    Snapshot // taken straight after the move; set by Controller.PlacePiece
}

// Snapshot is a point-in-time copy of a game for rendering
type Snapshot struct {
	Width              int
	Height             int
	Players            []model.Player
	CurrentPlayerIndex int
	Status             model.Status
	WinnerIndex        int // -1 unless Status is won
	MoveCount          int
	Cells              []*model.PieceView // nil for empty slots
	OpenColumns        []int
	WinningCells       []int
}

// Game sequences moves on a single grid. It performs no locking; callers
// serialise access.
type Game struct {
	grid      *model.Grid
	players   []*model.Player
	current   int
	status    model.Status
	win       *scanner.Win
	moves     int
	listeners []model.Listener
	logger    *slog.Logger
}

// New starts a game with the first player to move
func New(players []*model.Player, cfg Config, logger *slog.Logger) (*Game, error) {
	if len(players) == 0 {
		return nil, model.ErrNoPlayers
	}
	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("player %d: %w", i, model.ErrNoPlayers)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := model.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	return &Game{
		grid:    grid,
		players: append([]*model.Player(nil), players...),
		status:  model.InProgress(),
		logger:  logger,
	}, nil
}

// PlacePiece drops the current player's piece into a 1-indexed column.
// A failed move leaves the game exactly as it was and notifies nobody.
func (g *Game) PlacePiece(column int) (Outcome, error) {
	if g.status.IsTerminal() {
		return Outcome{}, model.ErrGameAlreadyFinished
	}

	player := g.players[g.current]
	idx, err := board.Drop(g.grid, column, player)
	if err != nil {
		return Outcome{}, err
	}
	g.moves++

	g.logger.Debug("piece dropped",
		slog.String("player", player.Name),
		slog.Int("column", column),
		slog.Int("index", idx),
	)

	event := model.Event{PlacedIndex: idx, Player: player, Move: g.moves}
	if win, ok := scanner.EvaluateWin(g.grid, idx); ok {
		g.win = &win
		g.status = model.Won(player, win.Axis)
		event.Type = model.EventGameWon

		g.logger.Info("game won",
			slog.String("player", player.Name),
			slog.String("axis", string(win.Axis)),
			slog.Int("moves", g.moves),
		)
	} else if scanner.EvaluateDraw(g.grid) {
		g.status = model.Draw()
		event.Type = model.EventGameDrawn

		g.logger.Info("game drawn", slog.Int("moves", g.moves))
	} else {
		g.current = (g.current + 1) % len(g.players)
		event.Type = model.EventTurnChanged
	}
	event.Status = g.status
	event.CurrentPlayer = g.players[g.current]

	outcome := Outcome{
		PlacedIndex: idx,
		Column:      g.grid.ColumnOf(idx),
		Row:         g.grid.RowOf(idx),
		Player:      player,
		Status:      g.status,
		Win:         g.win,
	}

	for _, l := range g.listeners {
		l(event)
	}
	return outcome, nil
}

// Subscribe registers a listener called once after every successful move.
// Listeners run synchronously in the order they were added.
func (g *Game) Subscribe(l model.Listener) {
	g.listeners = append(g.listeners, l)
}

// Status returns the current game status
func (g *Game) Status() model.Status {
	return g.status
}

// CurrentPlayer returns the player whose turn it is. Once the game is
// over this is the player who made the final move.
func (g *Game) CurrentPlayer() *model.Player {
	return g.players[g.current]
}

// CurrentPlayerIndex returns the position of the current player
func (g *Game) CurrentPlayerIndex() int {
	return g.current
}

// Players returns a copy of the player list
func (g *Game) Players() []*model.Player {
	return append([]*model.Player(nil), g.players...)
}

// Dimensions returns the grid width and height
func (g *Game) Dimensions() (int, int) {
	return g.grid.Width(), g.grid.Height()
}

// Config returns the dimensions as a Config, for starting a rematch
func (g *Game) Config() Config {
	return Config{Width: g.grid.Width(), Height: g.grid.Height()}
}

// MoveCount returns the number of successful moves
func (g *Game) MoveCount() int {
	return g.moves
}

// Win returns the winning run once the game has been won
func (g *Game) Win() (scanner.Win, bool) {
	if g.win == nil {
		return scanner.Win{}, false
	}
	return *g.win, true
}

// OpenColumns lists the columns that can still take a piece
func (g *Game) OpenColumns() []int {
	if g.status.IsTerminal() {
		return []int{}
	}
	return board.OpenColumns(g.grid)
}

// CellAt returns a view of the piece at idx. The second result is false
// for empty or out of range slots.
func (g *Game) CellAt(idx int) (model.PieceView, bool) {
	slot, err := g.grid.SlotAt(idx)
	if err != nil || !slot.HasPiece() {
		return model.PieceView{}, false
	}
	owner := slot.Piece.Owner
	return model.PieceView{
		Index:       idx,
		PlayerIndex: g.indexOf(owner),
		Player:      *owner,
		Color:       slot.Piece.Color(),
	}, true
}

// Snapshot copies the full game state
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Width:              g.grid.Width(),
		Height:             g.grid.Height(),
		Players:            make([]model.Player, len(g.players)),
		CurrentPlayerIndex: g.current,
		Status:             g.status,
		WinnerIndex:        -1,
		MoveCount:          g.moves,
		Cells:              make([]*model.PieceView, g.grid.Total()),
		OpenColumns:        g.OpenColumns(),
	}
	for i, p := range g.players {
		snap.Players[i] = *p
	}
	for idx := range snap.Cells {
		if view, ok := g.CellAt(idx); ok {
			snap.Cells[idx] = &view
		}
	}
	if g.status.Winner != nil {
		snap.WinnerIndex = g.indexOf(g.status.Winner)
	}
	if g.win != nil {
		snap.WinningCells = append([]int(nil), g.win.Cells...)
	}
	return snap
}

func (g *Game) indexOf(p *model.Player) int {
	for i, candidate := range g.players {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Cell returns the piece at a 1-indexed column and a row counted from the top
func (s Snapshot) Cell(column, row int) *model.PieceView {
	idx := (column-1)*s.Height + row
	if column < 1 || column > s.Width || row < 0 || row >= s.Height {
		return nil
	}
	return s.Cells[idx]
}

// IsWinningCell reports whether idx is part of the winning run
func (s Snapshot) IsWinningCell(idx int) bool {
	for _, c := range s.WinningCells {
		if c == idx {
			return true
		}
	}
	return false
}

// IsColumnOpen reports whether column can still take a piece
func (s Snapshot) IsColumnOpen(column int) bool {
	for _, c := range s.OpenColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Index returns the flat index for a 1-indexed column and a row from the top
func (s Snapshot) Index(column, row int) int {
	return (column-1)*s.Height + row
}
