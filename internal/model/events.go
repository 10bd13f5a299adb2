package model

// EventType identifies the type of event
type EventType string

const (
	EventTurnChanged EventType = "turn_changed"
	EventGameWon     EventType = "game_won"
	EventGameDrawn   EventType = "game_drawn"

	// EventRematch is published by the session registry, never by a game
	EventRematch EventType = "rematch"
)

// Event is published once for every successful move
type Event struct {
	Type          EventType
	PlacedIndex   int
	Player        *Player // who moved
	CurrentPlayer *Player // who moves next; unchanged on terminal events
	Status        Status
	Move          int    // move number that produced the event
	NextGameID    GameID // set on EventRematch only
}

// IsTerminal returns true for events that end the game
func (e Event) IsTerminal() bool {
	return e.Type == EventGameWon || e.Type == EventGameDrawn
}

// Listener receives engine events
type Listener func(Event)
