package model

// Axis is one of the four alignment lines checked for a win
type Axis string

// Row 0 is the top of the grid, so the NW-SE line falls to the right on
// screen and the SW-NE line rises.
const (
	AxisNone         Axis = ""
	AxisVertical     Axis = "vertical"
	AxisDiagonalDown Axis = "diagonal_down"
	AxisHorizontal   Axis = "horizontal"
	AxisDiagonalUp   Axis = "diagonal_up"
)

// Axes returns the axes in evaluation order
func Axes() []Axis {
	return []Axis{AxisVertical, AxisDiagonalDown, AxisHorizontal, AxisDiagonalUp}
}

// Directions returns the two directions walked outward from the origin
func (a Axis) Directions() (Direction, Direction, bool) {
	switch a {
	case AxisVertical:
		return North, South, true
	case AxisDiagonalDown:
		return NorthWest, SouthEast, true
	case AxisHorizontal:
		return West, East, true
	case AxisDiagonalUp:
		return SouthWest, NorthEast, true
	default:
		return 0, 0, false
	}
}

// Symbol returns the label for the axis. The diagonals keep their
// traditional labels: "/" for NW-SE and `\` for SW-NE.
func (a Axis) Symbol() string {
	switch a {
	case AxisVertical:
		return "|"
	case AxisDiagonalDown:
		return "/"
	case AxisHorizontal:
		return "-"
	case AxisDiagonalUp:
		return `\`
	default:
		return ""
	}
}
