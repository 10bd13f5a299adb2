package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrInvalidDimensions = errors.New("grid width and height are out of range")
	ErrIndexOutOfBounds  = errors.New("slot index out of bounds")

	// Move errors
	ErrInvalidColumn       = errors.New("invalid column")
	ErrColumnFull          = errors.New("column is full")
	ErrGameAlreadyFinished = errors.New("game is already finished")

	// Game errors
	ErrNoPlayers    = errors.New("at least one player is required")
	ErrGameNotFound = errors.New("game not found")
)
