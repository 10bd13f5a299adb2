package testutil

import (
	"fmt"

	"github.com/mcoot/connectfour/internal/model"
)

// GridFromRows builds a grid from a picture of the board, top row first.
// Each rune is looked up in owners; '.' marks an empty slot.
//
//	GridFromRows([]string{
//		"....",
//		"..R.",
//		".BR.",
//		"BBRR",
//	}, map[rune]*model.Player{'B': black, 'R': red})
//
// Pieces do not have to be supported from below, so impossible boards can
// be built for scanner tests.
func GridFromRows(rows []string, owners map[rune]*model.Player) *model.Grid {
	if len(rows) == 0 {
		panic("testutil: no rows")
	}
	height := len(rows)
	width := len([]rune(rows[0]))

	grid, err := model.NewGrid(width, height)
	if err != nil {
		panic(err)
	}

	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			panic(fmt.Sprintf("testutil: row %d has width %d, want %d", row, len(runes), width))
		}
		for col, r := range runes {
			if r == '.' {
				continue
			}
			owner, ok := owners[r]
			if !ok {
				panic(fmt.Sprintf("testutil: no owner for %q", r))
			}
			Place(grid, owner, grid.IndexAt(col+1, row))
		}
	}
	return grid
}

// Place puts a piece for player at each index, ignoring gravity
func Place(grid *model.Grid, player *model.Player, indices ...int) {
	for _, idx := range indices {
		slot, err := grid.SlotAt(idx)
		if err != nil {
			panic(err)
		}
		slot.Piece = model.NewPiece(player)
	}
}
