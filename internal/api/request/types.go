package request

import (
	"errors"
	"fmt"

	"github.com/mcoot/connectfour/internal/model"
)

// Player describes one seat in a new game
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Hex   string `json:"hex,omitempty"`
}

// CreateGameRequest is the request body for creating a game.
// Omitting players seats the default Black and Red pair; an explicit
// empty list is rejected.
type CreateGameRequest struct {
	Players []Player `json:"players,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
}

// ErrInvalidHex is returned for a seat hex that is not #RRGGBB
var ErrInvalidHex = errors.New("hex must have the form #RRGGBB")

// Validate checks the seat colors
func (r CreateGameRequest) Validate() error {
	for i, seat := range r.Players {
		if seat.Hex != "" && !model.ValidHex(seat.Hex) {
			return fmt.Errorf("player %d: %w", i+1, ErrInvalidHex)
		}
	}
	return nil
}

// MoveRequest is the request body for dropping a piece
type MoveRequest struct {
	Column int `json:"column"`
}

// ToPlayers builds model players from request seats. A nil list seats the
// default pair; names default to "Player N" and colors to the palette
// entry for the seat.
func ToPlayers(seats []Player) []*model.Player {
	if seats == nil {
		return model.DefaultPlayers()
	}

	players := make([]*model.Player, len(seats))
	for i, seat := range seats {
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		color := model.ColorFor(seat.Color, seat.Hex)
		if color.Label == "" && color.Hex == "" && i < len(model.Palette) {
			color = model.Palette[i]
		}
		players[i] = model.NewPlayer(name, color)
	}
	return players
}
