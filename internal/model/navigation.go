package model

// Direction is one of the eight compass directions across the grid
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// String returns the compass abbreviation
func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "?"
	}
	return directionNames[d]
}

// Directions lists every direction in compass order
func Directions() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// Neighbor returns the index one step from origin in direction d.
// The second result is false when the step would leave the grid.
//
// Every step is an edge check followed by a fixed offset in the flat
// column-major index space; no row/column arithmetic is involved.
func (g *Grid) Neighbor(origin int, d Direction) (int, bool) {
	h := g.height

	var blocked bool
	var offset int
	switch d {
	case North:
		blocked, offset = g.IsTopEdge(origin), -1
	case South:
		blocked, offset = g.IsBottomEdge(origin), 1
	case East:
		blocked, offset = g.IsRightEdge(origin), h
	case West:
		blocked, offset = g.IsLeftEdge(origin), -h
	case NorthEast:
		blocked, offset = g.IsTopEdge(origin) || g.IsRightEdge(origin), h-1
	case SouthWest:
		blocked, offset = g.IsBottomEdge(origin) || g.IsLeftEdge(origin), -(h - 1)
	case SouthEast:
		blocked, offset = g.IsBottomEdge(origin) || g.IsRightEdge(origin), h+1
	case NorthWest:
		blocked, offset = g.IsTopEdge(origin) || g.IsLeftEdge(origin), -(h + 1)
	default:
		return 0, false
	}
	if blocked {
		return 0, false
	}

	target := origin + offset
	if !g.InBounds(target) {
		return 0, false
	}
	return target, true
}

// N returns the slot above origin
func (g *Grid) N(origin int) (int, bool) { return g.Neighbor(origin, North) }

// NE returns the slot up and to the right of origin
func (g *Grid) NE(origin int) (int, bool) { return g.Neighbor(origin, NorthEast) }

// E returns the slot to the right of origin
func (g *Grid) E(origin int) (int, bool) { return g.Neighbor(origin, East) }

// SE returns the slot down and to the right of origin
func (g *Grid) SE(origin int) (int, bool) { return g.Neighbor(origin, SouthEast) }

// S returns the slot below origin
func (g *Grid) S(origin int) (int, bool) { return g.Neighbor(origin, South) }

// SW returns the slot down and to the left of origin
func (g *Grid) SW(origin int) (int, bool) { return g.Neighbor(origin, SouthWest) }

// W returns the slot to the left of origin
func (g *Grid) W(origin int) (int, bool) { return g.Neighbor(origin, West) }

// NW returns the slot up and to the left of origin
func (g *Grid) NW(origin int) (int, bool) { return g.Neighbor(origin, NorthWest) }
