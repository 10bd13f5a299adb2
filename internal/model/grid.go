package model

import "math"

// Piece is a single disc dropped into the grid
type Piece struct {
	Owner *Player // not owned; players outlive their pieces
}

// NewPiece creates a piece owned by the given player
func NewPiece(owner *Player) *Piece {
	return &Piece{Owner: owner}
}

// Color returns the owner's color
func (p *Piece) Color() Color {
	if p == nil || p.Owner == nil {
		return Color{}
	}
	return p.Owner.Color
}

// Slot is one cell of the grid. Once a piece lands it is never removed.
type Slot struct {
	Index int
	Piece *Piece
}

// HasPiece returns true if the slot is occupied
func (s *Slot) HasPiece() bool {
	return s.Piece != nil
}

// HasPlayerPiece returns true if the slot holds a piece owned by player
func (s *Slot) HasPlayerPiece(player *Player) bool {
	return s.HasPiece() && s.Piece.Owner == player
}

// Grid is a width x height board stored as a flat, column-major slice.
//
// index = column*height + row, where row 0 is the top of the column.
// Column c therefore spans [c*height, c*height+height-1], top to bottom.
type Grid struct {
	width  int
	height int
	cells  []Slot
}

// NewGrid allocates an empty grid
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, ErrInvalidDimensions
	}
	cells := make([]Slot, width*height)
	for i := range cells {
		cells[i].Index = i
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Total returns the number of slots
func (g *Grid) Total() int {
	return len(g.cells)
}

// IsTopEdge returns true if idx is the first slot of its column
func (g *Grid) IsTopEdge(idx int) bool {
	return idx%g.height == 0
}

// IsBottomEdge returns true if idx is the last slot of its column
func (g *Grid) IsBottomEdge(idx int) bool {
	return idx%g.height == g.height-1
}

// IsLeftEdge returns true if idx lies in the first column
func (g *Grid) IsLeftEdge(idx int) bool {
	return inclusive(0, g.height-1, idx)
}

// IsRightEdge returns true if idx lies in the last column
func (g *Grid) IsRightEdge(idx int) bool {
	total := g.Total()
	return inclusive(total-g.height, total-1, idx)
}

// InBounds returns true if idx addresses a slot
func (g *Grid) InBounds(idx int) bool {
	return idx >= 0 && idx < g.Total()
}

// SlotAt returns the slot at idx
func (g *Grid) SlotAt(idx int) (*Slot, error) {
	if !g.InBounds(idx) {
		return nil, ErrIndexOutOfBounds
	}
	return &g.cells[idx], nil
}

// Full returns true if every slot holds a piece
func (g *Grid) Full() bool {
	for i := range g.cells {
		if !g.cells[i].HasPiece() {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of open slots
func (g *Grid) EmptyCount() int {
	count := 0
	for i := range g.cells {
		if !g.cells[i].HasPiece() {
			count++
		}
	}
	return count
}

// ColumnOf returns the 1-indexed column containing idx
func (g *Grid) ColumnOf(idx int) int {
	return idx/g.height + 1
}

// RowOf returns the 0-indexed row of idx, counted from the top
func (g *Grid) RowOf(idx int) int {
	return idx % g.height
}

// IndexAt returns the flat index for a 1-indexed column and a row from the top.
// Adapters use it to lay the grid out row by row.
func (g *Grid) IndexAt(column, row int) int {
	return (column-1)*g.height + row
}

func inclusive(min, max, n int) bool {
	return n >= min && n <= max
}
