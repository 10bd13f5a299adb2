package response

import (
	"time"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Hex   string `json:"hex,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(index int, p model.Player) Player {
	return Player{
		Index: index,
		Name:  p.Name,
		Color: p.Color.Label,
		Hex:   p.Color.Hex,
	}
}

// Status represents the game status
type Status struct {
	State  string  `json:"state"`
	Winner *Player `json:"winner,omitempty"`
	Axis   string  `json:"axis,omitempty"`
}

// StatusFromModel converts a game status. winner indexes players and is
// ignored unless the game was won.
func StatusFromModel(s model.Status, winner int, players []Player) Status {
	status := Status{
		State: string(s.State),
		Axis:  string(s.Axis),
	}
	if s.State == model.GameStateWon && winner >= 0 && winner < len(players) {
		w := players[winner]
		status.Winner = &w
	}
	return status
}

// Game represents a game in API responses
type Game struct {
	ID            string    `json:"id"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Players       []Player  `json:"players"`
	CurrentPlayer Player    `json:"current_player"`
	Status        Status    `json:"status"`
	MoveCount     int       `json:"move_count"`
	// Rows lists the board top row first; each entry is the owning
	// player's index or -1 for an empty slot
	Rows         [][]int   `json:"rows"`
	OpenColumns  []int     `json:"open_columns"`
	WinningCells []int     `json:"winning_cells,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GameFromSession converts a session to a response Game
func GameFromSession(s *game.Session) Game {
	return GameFromSnapshot(s.ID, s.Snapshot(), s.CreatedAt, s.UpdatedAt())
}

// GameFromSnapshot converts a game snapshot to a response Game
func GameFromSnapshot(id model.GameID, snap game.Snapshot, createdAt, updatedAt time.Time) Game {
	players := make([]Player, len(snap.Players))
	for i, p := range snap.Players {
		players[i] = PlayerFromModel(i, p)
	}

	rows := make([][]int, snap.Height)
	for row := 0; row < snap.Height; row++ {
		rows[row] = make([]int, snap.Width)
		for col := 1; col <= snap.Width; col++ {
			rows[row][col-1] = -1
			if cell := snap.Cell(col, row); cell != nil {
				rows[row][col-1] = cell.PlayerIndex
			}
		}
	}

	status := StatusFromModel(snap.Status, snap.WinnerIndex, players)

	return Game{
		ID:            string(id),
		Width:         snap.Width,
		Height:        snap.Height,
		Players:       players,
		CurrentPlayer: players[snap.CurrentPlayerIndex],
		Status:        status,
		MoveCount:     snap.MoveCount,
		Rows:          rows,
		OpenColumns:   snap.OpenColumns,
		WinningCells:  snap.WinningCells,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []Game `json:"games"`
}

// MoveResponse is the response after dropping a piece
type MoveResponse struct {
	PlacedIndex int    `json:"placed_index"`
	Column      int    `json:"column"`
	Row         int    `json:"row"`
	Status      Status `json:"status"`
	Game        Game   `json:"game"`
}

// Piece is the occupant of a slot
type Piece struct {
	Player Player `json:"player"`
}

// CellResponse is the response for a single slot
type CellResponse struct {
	Index int    `json:"index"`
	Piece *Piece `json:"piece"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// Stream message types other than engine event types
const (
	StreamSnapshot = "snapshot"
)

// StreamMessage is pushed to websocket watchers: once as a snapshot on
// connect and then once per game event
type StreamMessage struct {
	Type          string  `json:"type"`
	GameID        string  `json:"game_id"`
	Status        string  `json:"status"`
	CurrentPlayer *Player `json:"current_player,omitempty"`
	Winner        *Player `json:"winner,omitempty"`
	Axis          string  `json:"axis,omitempty"`
	PlacedIndex   *int    `json:"placed_index,omitempty"`
	Move          int     `json:"move,omitempty"`
	NextGameID    string  `json:"next_game_id,omitempty"`
	Game          *Game   `json:"game,omitempty"`
}

// SnapshotMessage builds the initial stream message for a game
func SnapshotMessage(g Game) StreamMessage {
	current := g.CurrentPlayer
	return StreamMessage{
		Type:          StreamSnapshot,
		GameID:        g.ID,
		Status:        g.Status.State,
		CurrentPlayer: &current,
		Winner:        g.Status.Winner,
		Axis:          g.Status.Axis,
		Game:          &g,
	}
}

// EventMessage builds a stream message for an engine or registry event.
// g is the game state after the event, or nil if the game is gone.
func EventMessage(id model.GameID, e model.Event, g *Game) StreamMessage {
	msg := StreamMessage{
		Type:       string(e.Type),
		GameID:     string(id),
		Status:     string(e.Status.State),
		Axis:       string(e.Status.Axis),
		NextGameID: string(e.NextGameID),
		Game:       g,
	}
	if e.Type != model.EventRematch {
		idx := e.PlacedIndex
		msg.PlacedIndex = &idx
		msg.Move = e.Move
	}
	if g != nil {
		current := g.CurrentPlayer
		msg.CurrentPlayer = &current
		msg.Winner = g.Status.Winner
	} else {
		if e.CurrentPlayer != nil {
			p := PlayerFromModel(-1, *e.CurrentPlayer)
			msg.CurrentPlayer = &p
		}
		if e.Status.Winner != nil {
			p := PlayerFromModel(-1, *e.Status.Winner)
			msg.Winner = &p
		}
	}
	return msg
}
