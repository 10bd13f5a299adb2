package cli

import (
	"fmt"
	"strings"

	"github.com/mcoot/connectfour/internal/api/request"
)

// parseSeats reads --player values of the form "name" or "name:color".
// A color starting with # is taken as a hex value. No values means the
// server or engine picks the default pair.
func parseSeats(specs []string) ([]request.Player, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	seats := make([]request.Player, 0, len(specs))
	for _, spec := range specs {
		name, color, _ := strings.Cut(spec, ":")
		name = strings.TrimSpace(name)
		color = strings.TrimSpace(color)
		if name == "" && color == "" {
			return nil, fmt.Errorf("invalid player %q: want name or name:color", spec)
		}

		seat := request.Player{Name: name}
		if strings.HasPrefix(color, "#") {
			seat.Hex = color
		} else {
			seat.Color = color
		}
		seats = append(seats, seat)
	}
	return seats, nil
}
