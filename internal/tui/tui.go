// Package tui plays a hot-seat game on a terminal screen
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

// Screen layout rows
const (
	titleRow   = 0
	statusRow  = 1
	headerRow  = 3
	cursorRow  = 4
	boardTop   = 5
	cellWidth  = 3
	helpText   = "Left/Right or 1-9 select  Enter/Space drop  r new game  q quit"
	finishText = "Finish this game before starting another"
)

// App is a local game drawn on a tcell screen
type App struct {
	screen  tcell.Screen
	players []*model.Player
	cfg     game.Config
	logger  *slog.Logger

	game    *game.Game
	cursor  int // selected column, 1-indexed
	message string
}

// New creates an App and starts its first game
func New(screen tcell.Screen, players []*model.Player, cfg game.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		screen:  screen,
		players: players,
		cfg:     cfg,
		logger:  logger,
	}
	if err := a.newGame(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) newGame() error {
	g, err := game.New(a.players, a.cfg, a.logger)
	if err != nil {
		return err
	}
	g.Subscribe(a.onEvent)

	width, _ := g.Dimensions()
	a.game = g
	a.cursor = (width + 1) / 2
	a.message = ""
	return nil
}

func (a *App) onEvent(e model.Event) {
	switch e.Type {
	case model.EventGameWon:
		a.message = fmt.Sprintf("Four in a row (%s). Press r to play again.", e.Status.Axis)
	case model.EventGameDrawn:
		a.message = "The board is full. Press r to play again."
	default:
		a.message = ""
	}
}

// Run draws the game and handles input until the player quits or the
// screen is finalised
func (a *App) Run() error {
	a.Draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
			a.Draw()
		case *tcell.EventKey:
			if !a.HandleKey(ev) {
				return nil
			}
			a.Draw()
		}
	}
}

// HandleKey applies one key press. It returns false when the player quits.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.moveCursor(-1)
	case tcell.KeyRight:
		a.moveCursor(1)
	case tcell.KeyEnter:
		a.drop()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			return false
		case r == 'r' || r == 'R':
			a.restart()
		case r == ' ':
			a.drop()
		case r == 'h':
			a.moveCursor(-1)
		case r == 'l':
			a.moveCursor(1)
		case r >= '1' && r <= '9':
			a.selectColumn(int(r - '0'))
		}
	}
	return true
}

func (a *App) moveCursor(delta int) {
	width, _ := a.game.Dimensions()
	a.cursor = min(max(a.cursor+delta, 1), width)
}

func (a *App) selectColumn(column int) {
	width, _ := a.game.Dimensions()
	if column <= width {
		a.cursor = column
	}
}

func (a *App) drop() {
	if _, err := a.game.PlacePiece(a.cursor); err != nil {
		a.message = errorText(err)
		a.logger.Debug("drop rejected", slog.Int("column", a.cursor), slog.String("error", err.Error()))
	}
}

func (a *App) restart() {
	if !a.game.Status().IsTerminal() {
		a.message = finishText
		return
	}
	if err := a.newGame(); err != nil {
		a.message = err.Error()
	}
}

// Draw renders the whole screen
func (a *App) Draw() {
	snap := a.game.Snapshot()
	a.screen.Clear()

	bold := tcell.StyleDefault.Bold(true)
	a.drawText(0, titleRow, bold, "Connect Four")
	a.drawText(0, statusRow, tcell.StyleDefault, statusLine(snap))

	for col := 1; col <= snap.Width; col++ {
		x := columnX(col)
		a.drawText(x, headerRow, tcell.StyleDefault, strconv.Itoa(col%10))
		if col == a.cursor && !snap.Status.IsTerminal() {
			a.drawText(x, cursorRow, bold, "v")
		}
	}

	for row := 0; row < snap.Height; row++ {
		y := boardTop + row
		a.drawText(0, y, tcell.StyleDefault, "|")
		for col := 1; col <= snap.Width; col++ {
			x := columnX(col)
			idx := snap.Index(col, row)
			if snap.IsWinningCell(idx) {
				a.drawText(x-1, y, bold, "[")
				a.drawText(x+1, y, bold, "]")
			}
			if cell := snap.Cells[idx]; cell != nil {
				a.screen.SetContent(x, y, model.Symbol(cell.PlayerIndex), nil, pieceStyle(cell.Player.Color))
			} else {
				a.screen.SetContent(x, y, '.', nil, tcell.StyleDefault)
			}
		}
		a.drawText(1+snap.Width*cellWidth, y, tcell.StyleDefault, "|")
	}

	bottom := boardTop + snap.Height
	a.drawText(0, bottom, tcell.StyleDefault, "+")
	for x := 1; x <= snap.Width*cellWidth; x++ {
		a.screen.SetContent(x, bottom, '-', nil, tcell.StyleDefault)
	}
	a.drawText(1+snap.Width*cellWidth, bottom, tcell.StyleDefault, "+")

	a.drawText(0, bottom+1, tcell.StyleDefault.Foreground(tcell.ColorYellow), a.message)
	a.drawText(0, bottom+2, tcell.StyleDefault.Dim(true), helpText)

	a.screen.Show()
}

func (a *App) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// columnX is the screen column of the piece in a 1-indexed board column
func columnX(col int) int {
	return 2 + (col-1)*cellWidth
}

func statusLine(snap game.Snapshot) string {
	switch snap.Status.State {
	case model.GameStateWon:
		return snap.Players[snap.WinnerIndex].Name + " wins!"
	case model.GameStateDraw:
		return "Game over: draw"
	default:
		return snap.Players[snap.CurrentPlayerIndex].Name + "'s turn"
	}
}

// pieceStyle paints the piece in its player's color with a readable symbol
func pieceStyle(c model.Color) tcell.Style {
	style := tcell.StyleDefault.Bold(true)
	if c.Hex == "" {
		return style
	}
	bg := tcell.GetColor(c.Hex)
	r, g, b := bg.RGB()
	fg := tcell.ColorWhite
	if r*299+g*587+b*114 > 128000 {
		fg = tcell.ColorBlack
	}
	return style.Background(bg).Foreground(fg)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, model.ErrColumnFull):
		return "That column is full"
	case errors.Is(err, model.ErrInvalidColumn):
		return "That column is not on the board"
	case errors.Is(err, model.ErrGameAlreadyFinished):
		return "The game is over. Press r to play again."
	default:
		return err.Error()
	}
}
