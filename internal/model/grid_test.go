package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	return g
}

func TestNewGrid(t *testing.T) {
	g := newTestGrid(t, 4, 4)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, 16, g.Total())
	assert.Equal(t, 16, g.EmptyCount())
	assert.False(t, g.Full())
}

func TestNewGridRejectsNonPositiveDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 6},
		{"zero height", 7, 0},
		{"negative width", -1, 6},
		{"negative height", 7, -3},
		{"area overflows int", math.MaxInt/2 + 1, 2},
		{"both sides huge", math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, g)
		})
	}
}

func TestEdgePredicates(t *testing.T) {
	g := newTestGrid(t, 4, 4)

	assert.True(t, g.IsTopEdge(0), "index 0 is top edge")
	assert.True(t, g.IsTopEdge(8), "index 8 is top edge")
	assert.False(t, g.IsTopEdge(7), "index 7 is not top edge")

	assert.True(t, g.IsLeftEdge(0), "index 0 is left edge")
	assert.True(t, g.IsLeftEdge(2), "index 2 is left edge")
	assert.False(t, g.IsLeftEdge(5), "index 5 is not left edge")

	assert.True(t, g.IsRightEdge(15), "index 15 is right edge")
	assert.True(t, g.IsRightEdge(13), "index 13 is right edge")
	assert.False(t, g.IsRightEdge(11), "index 11 is not right edge")

	assert.True(t, g.IsBottomEdge(3), "index 3 is bottom edge")
	assert.True(t, g.IsBottomEdge(7), "index 7 is bottom edge")
	assert.False(t, g.IsBottomEdge(8), "index 8 is not bottom edge")
}

func TestEdgePredicatesMatchFormulas(t *testing.T) {
	for _, dims := range [][2]int{{7, 6}, {4, 4}, {1, 1}, {3, 5}, {5, 2}} {
		g := newTestGrid(t, dims[0], dims[1])
		h, total := g.Height(), g.Total()
		for idx := 0; idx < total; idx++ {
			assert.Equal(t, idx%h == 0, g.IsTopEdge(idx))
			assert.Equal(t, idx%h == h-1, g.IsBottomEdge(idx))
			assert.Equal(t, idx >= 0 && idx <= h-1, g.IsLeftEdge(idx))
			assert.Equal(t, idx >= total-h && idx <= total-1, g.IsRightEdge(idx))
		}
	}
}

func TestInBounds(t *testing.T) {
	g := newTestGrid(t, 7, 6)

	assert.True(t, g.InBounds(0))
	assert.True(t, g.InBounds(41))
	assert.False(t, g.InBounds(42))
	assert.False(t, g.InBounds(-1))
}

func TestSlotAt(t *testing.T) {
	g := newTestGrid(t, 7, 6)

	slot, err := g.SlotAt(10)
	require.NoError(t, err)
	assert.Equal(t, 10, slot.Index)
	assert.False(t, slot.HasPiece())

	_, err = g.SlotAt(42)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = g.SlotAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestSlotOwnership(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	black, red := NewPlayer("Black", ColorBlack), NewPlayer("Red", ColorRed)

	slot, _ := g.SlotAt(1)
	slot.Piece = NewPiece(black)

	assert.True(t, slot.HasPiece())
	assert.True(t, slot.HasPlayerPiece(black))
	assert.False(t, slot.HasPlayerPiece(red))
	assert.Equal(t, ColorBlack, slot.Piece.Color())
}

func TestFullAndEmptyCount(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	p := NewPlayer("Solo", ColorRed)

	for i := 0; i < g.Total(); i++ {
		assert.False(t, g.Full())
		assert.Equal(t, g.Total()-i, g.EmptyCount())
		slot, _ := g.SlotAt(i)
		slot.Piece = NewPiece(p)
	}

	assert.True(t, g.Full())
	assert.Equal(t, 0, g.EmptyCount())
}

func TestColumnAndRowOf(t *testing.T) {
	g := newTestGrid(t, 7, 6)

	assert.Equal(t, 1, g.ColumnOf(0))
	assert.Equal(t, 0, g.RowOf(0))
	assert.Equal(t, 1, g.ColumnOf(5))
	assert.Equal(t, 5, g.RowOf(5))
	assert.Equal(t, 2, g.ColumnOf(6))
	assert.Equal(t, 7, g.ColumnOf(41))
	assert.Equal(t, 5, g.RowOf(41))

	assert.Equal(t, 41, g.IndexAt(7, 5))
	assert.Equal(t, 6, g.IndexAt(2, 0))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, ColorRed, ColorFor("Red", ""))
	assert.Equal(t, "#FFD700", ColorFor("yellow", "").Hex)
	assert.Equal(t, Color{Hex: "#123456", Label: "custom"}, ColorFor("custom", "#123456"))
	assert.Equal(t, Color{Label: "mauve"}, ColorFor("mauve", ""))
}

func TestColorForIgnoresMalformedHex(t *testing.T) {
	for _, hex := range []string{
		"red;background-image:url(//evil.example/x)",
		"#12345",
		"#1234567",
		"123456",
		"#GGGGGG",
		"#123456;",
	} {
		t.Run(hex, func(t *testing.T) {
			assert.False(t, ValidHex(hex))
			assert.Equal(t, ColorRed, ColorFor("red", hex))
			assert.Equal(t, Color{Label: "custom"}, ColorFor("custom", hex))
		})
	}
	assert.True(t, ValidHex("#a1B2c3"))
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, 'X', Symbol(0))
	assert.Equal(t, 'O', Symbol(1))
	assert.Equal(t, 'X', Symbol(8))
	assert.Equal(t, '?', Symbol(-1))
}
