package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

// PrintStream outputs one stream message. JSON output is one object per
// line so it can be piped.
func (o *Output) PrintStream(msg response.StreamMessage, at time.Time) {
	if o.format == "json" {
		data, _ := json.Marshal(msg)
		_, _ = fmt.Fprintln(o.w, string(data))
		return
	}

	timestamp := at.Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(o.w, "[%s] %s: %s\n", timestamp, msg.Type, streamSummary(msg))
	if msg.Game != nil && msg.Type != response.StreamSnapshot {
		o.printBoard(*msg.Game)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.MoveResponse:
		o.printMove(v)
	case response.CellResponse:
		o.printCell(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	_, _ = fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	_, _ = fmt.Fprintf(o.w, "Board: %dx%d\n", g.Width, g.Height)
	_, _ = fmt.Fprintln(o.w, "Players:")
	for _, p := range g.Players {
		_, _ = fmt.Fprintf(o.w, "  %c %s (%s)\n", model.Symbol(p.Index), p.Name, p.Color)
	}
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", statusText(g.Status, g.CurrentPlayer))
	_, _ = fmt.Fprintf(o.w, "Moves: %d\n\n", g.MoveCount)
	o.printBoard(g)
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		_, _ = fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range l.Games {
		names := make([]string, len(g.Players))
		for i, p := range g.Players {
			names[i] = p.Name
		}
		_, _ = fmt.Fprintf(o.w, "%s  %dx%d  %s  %s\n",
			g.ID, g.Width, g.Height, strings.Join(names, " vs "), statusText(g.Status, g.CurrentPlayer))
	}
}

func (o *Output) printMove(m response.MoveResponse) {
	_, _ = fmt.Fprintf(o.w, "Dropped into column %d (row %d, slot %d)\n", m.Column, m.Row, m.PlacedIndex)
	_, _ = fmt.Fprintf(o.w, "Status: %s\n\n", statusText(m.Status, m.Game.CurrentPlayer))
	o.printBoard(m.Game)
}

func (o *Output) printCell(c response.CellResponse) {
	if c.Piece == nil {
		_, _ = fmt.Fprintf(o.w, "Slot %d: empty\n", c.Index)
		return
	}
	p := c.Piece.Player
	_, _ = fmt.Fprintf(o.w, "Slot %d: %c %s (%s)\n", c.Index, model.Symbol(p.Index), p.Name, p.Color)
}

func (o *Output) printHealth(h response.Health) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}

// printBoard draws the rows top first. Winning slots are bracketed.
func (o *Output) printBoard(g response.Game) {
	if len(g.Rows) == 0 {
		return
	}

	winning := make(map[int]bool, len(g.WinningCells))
	for _, idx := range g.WinningCells {
		winning[idx] = true
	}

	var b strings.Builder
	b.WriteString(" ")
	for col := 1; col <= g.Width; col++ {
		fmt.Fprintf(&b, "%2d ", col)
	}
	b.WriteString("\n")

	for row, cells := range g.Rows {
		b.WriteString("|")
		for col, owner := range cells {
			symbol := '.'
			if owner >= 0 {
				symbol = model.Symbol(owner)
			}
			if winning[col*g.Height+row] {
				fmt.Fprintf(&b, "[%c]", symbol)
			} else {
				fmt.Fprintf(&b, " %c ", symbol)
			}
		}
		b.WriteString("|\n")
	}

	b.WriteString("+" + strings.Repeat("---", g.Width) + "+\n")
	_, _ = io.WriteString(o.w, b.String())
}

func statusText(s response.Status, current response.Player) string {
	switch s.State {
	case string(model.GameStateWon):
		name := "Someone"
		if s.Winner != nil {
			name = s.Winner.Name
		}
		if s.Axis != "" {
			return fmt.Sprintf("%s wins! (%s)", name, s.Axis)
		}
		return name + " wins!"
	case string(model.GameStateDraw):
		return "Game over: draw"
	default:
		return current.Name + "'s turn"
	}
}

func streamSummary(msg response.StreamMessage) string {
	if msg.Type == string(model.EventRematch) {
		return "rematch started as " + msg.NextGameID
	}

	var current response.Player
	if msg.CurrentPlayer != nil {
		current = *msg.CurrentPlayer
	}
	summary := statusText(response.Status{
		State:  msg.Status,
		Winner: msg.Winner,
		Axis:   msg.Axis,
	}, current)
	if msg.PlacedIndex != nil {
		summary += fmt.Sprintf(" (slot %d)", *msg.PlacedIndex)
	}
	return summary
}
