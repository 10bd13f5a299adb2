package board

import (
	"errors"

	"github.com/mcoot/connectfour/internal/model"
)

// ValidateColumn checks that a 1-indexed column lies within the grid
func ValidateColumn(grid *model.Grid, column int) error {
	if column < 1 || column > grid.Width() {
		return model.ErrInvalidColumn
	}
	return nil
}

// ColumnTop returns the index of the top slot of a 1-indexed column
func ColumnTop(grid *model.Grid, column int) int {
	return (column - 1) * grid.Height()
}

// Landing returns the index a piece dropped into column would occupy,
// without placing it.
func Landing(grid *model.Grid, column int) (int, error) {
	if err := ValidateColumn(grid, column); err != nil {
		return 0, err
	}

	top := ColumnTop(grid, column)
	landing := -1
	// Last empty slot walking down is the lowest open row
	for idx := top; idx < top+grid.Height(); idx++ {
		slot, err := grid.SlotAt(idx)
		if err != nil {
			return 0, err
		}
		if !slot.HasPiece() {
			landing = idx
		}
	}
	if landing < 0 {
		return 0, model.ErrColumnFull
	}
	return landing, nil
}

// Drop places a piece for player into column and returns the absolute
// index it landed at. On error the grid is untouched.
func Drop(grid *model.Grid, column int, player *model.Player) (int, error) {
	idx, err := Landing(grid, column)
	if err != nil {
		return 0, err
	}

	slot, err := grid.SlotAt(idx)
	if err != nil {
		return 0, err
	}
	slot.Piece = model.NewPiece(player)
	return idx, nil
}

// OpenColumns lists the 1-indexed columns that can still take a piece
func OpenColumns(grid *model.Grid) []int {
	open := make([]int, 0, grid.Width())
	for column := 1; column <= grid.Width(); column++ {
		top, err := grid.SlotAt(ColumnTop(grid, column))
		if err == nil && !top.HasPiece() {
			open = append(open, column)
		}
	}
	return open
}

// IsColumnFull checks whether column has no empty slot
func IsColumnFull(grid *model.Grid, column int) bool {
	_, err := Landing(grid, column)
	return errors.Is(err, model.ErrColumnFull)
}
