package scanner

import (
	"github.com/mcoot/connectfour/internal/model"
)

// WinLength is the run length that wins the game
const WinLength = 4

// Win describes a winning run through the last placed piece
type Win struct {
	Player *model.Player
	Axis   model.Axis
	Count  int
	// Cells holds the run from the far end of the axis' first direction
	// through the origin to the far end of the second.
	Cells []int
}

// Contains reports whether idx is part of the winning run
func (w *Win) Contains(idx int) bool {
	if w == nil {
		return false
	}
	for _, c := range w.Cells {
		if c == idx {
			return true
		}
	}
	return false
}

// EvaluateWin checks whether the piece at origin completes a run of
// WinLength. Axes are checked in model.Axes() order and the first axis to
// reach WinLength is reported.
func EvaluateWin(grid *model.Grid, origin int) (Win, bool) {
	slot, err := grid.SlotAt(origin)
	if err != nil || !slot.HasPiece() {
		return Win{}, false
	}
	player := slot.Piece.Owner

	for _, axis := range model.Axes() {
		first, second, _ := axis.Directions()

		before := walk(grid, origin, first, player)
		after := walk(grid, origin, second, player)
		count := 1 + len(before) + len(after)
		if count < WinLength {
			continue
		}

		cells := make([]int, 0, count)
		for i := len(before) - 1; i >= 0; i-- {
			cells = append(cells, before[i])
		}
		cells = append(cells, origin)
		cells = append(cells, after...)

		return Win{
			Player: player,
			Axis:   axis,
			Count:  count,
			Cells:  cells,
		}, true
	}

	return Win{}, false
}

// EvaluateDraw reports whether every slot holds a piece. Callers check it
// only after EvaluateWin found nothing.
func EvaluateDraw(grid *model.Grid) bool {
	return grid.Full()
}

// walk steps from origin in direction d while slots belong to player,
// returning the visited indices nearest first
func walk(grid *model.Grid, origin int, d model.Direction, player *model.Player) []int {
	var run []int
	current := origin
	for {
		next, ok := grid.Neighbor(current, d)
		if !ok {
			return run
		}
		slot, err := grid.SlotAt(next)
		if err != nil || !slot.HasPlayerPiece(player) {
			return run
		}
		run = append(run, next)
		current = next
	}
}
