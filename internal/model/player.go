package model

import (
	"regexp"
	"strings"
)

// Color identifies a player's pieces for display
type Color struct {
	Hex   string `json:"hex"`
	Label string `json:"label"`
}

// Default piece colors
var (
	ColorBlack = Color{Hex: "#000000", Label: "black"}
	ColorRed   = Color{Hex: "#FF0000", Label: "red"}
)

// Player represents a game participant
// The engine does not require colors to be distinct between players
type Player struct {
	Name  string
	Color Color
}

// NewPlayer creates a player with the given name and color
func NewPlayer(name string, color Color) *Player {
	return &Player{Name: name, Color: color}
}

// DefaultPlayers returns the standard two-player lineup
func DefaultPlayers() []*Player {
	return []*Player{
		NewPlayer("Black", ColorBlack),
		NewPlayer("Red", ColorRed),
	}
}

// Palette lists the named colors players can pick
var Palette = []Color{
	ColorBlack,
	ColorRed,
	{Hex: "#FFD700", Label: "yellow"},
	{Hex: "#1E90FF", Label: "blue"},
	{Hex: "#2E8B57", Label: "green"},
	{Hex: "#8A2BE2", Label: "purple"},
}

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidHex reports whether hex has the form #RRGGBB
func ValidHex(hex string) bool {
	return hexPattern.MatchString(hex)
}

// ColorFor resolves a color from a label and an optional hex value.
// A hex that is not #RRGGBB is ignored and the label is looked up in
// the palette instead.
func ColorFor(label, hex string) Color {
	label = strings.ToLower(strings.TrimSpace(label))
	if ValidHex(hex) {
		return Color{Hex: hex, Label: label}
	}
	for _, c := range Palette {
		if c.Label == label {
			return c
		}
	}
	return Color{Label: label}
}

// Text symbols for surfaces that cannot show color
const pieceSymbols = "XO@#%&*+"

// Symbol returns the text symbol for the player at index
func Symbol(index int) rune {
	if index < 0 {
		return '?'
	}
	return rune(pieceSymbols[index%len(pieceSymbols)])
}
