package model

// GameID identifies a game session
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress"
	GameStateDraw       GameState = "draw"
	GameStateWon        GameState = "won"
)

// Status is the game's state plus, once won, who won and along which axis
type Status struct {
	State  GameState
	Winner *Player
	Axis   Axis
}

// InProgress returns the initial status
func InProgress() Status {
	return Status{State: GameStateInProgress}
}

// Draw returns the full-board status
func Draw() Status {
	return Status{State: GameStateDraw}
}

// Won returns the status for a win by player along axis
func Won(player *Player, axis Axis) Status {
	return Status{State: GameStateWon, Winner: player, Axis: axis}
}

// IsTerminal returns true once no more moves are accepted
func (s Status) IsTerminal() bool {
	return s.State == GameStateDraw || s.State == GameStateWon
}

// PieceView is a read-only copy of a slot's occupant
type PieceView struct {
	Index       int
	PlayerIndex int // position of the owner in the game's player list
	Player      Player
	Color       Color
}
