package handler

import (
	"errors"
	"strconv"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

// flashForError turns an engine or registry error into a message for the player
func flashForError(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidColumn):
		return "That column is not on the board"
	case errors.Is(err, model.ErrColumnFull):
		return "That column is full"
	case errors.Is(err, model.ErrGameAlreadyFinished):
		return "The game is already over"
	case errors.Is(err, model.ErrGameNotFound):
		return "Game not found"
	case errors.Is(err, model.ErrInvalidDimensions):
		return "Board width and height must be between 1 and " + strconv.Itoa(game.MaxDimension)
	case errors.Is(err, model.ErrNoPlayers):
		return "At least one player is required"
	default:
		return "Something went wrong"
	}
}
