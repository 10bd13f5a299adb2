package game

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/connectfour/internal/dependencies/clock"
	"github.com/mcoot/connectfour/internal/dependencies/ids"
	"github.com/mcoot/connectfour/internal/model"
)

// Session is a game registered with the controller. All access to the
// underlying game goes through the session lock.
type Session struct {
	ID        model.GameID
	CreatedAt time.Time

	mu        sync.Mutex
	game      *Game
	updatedAt time.Time
	pending   []model.Event
	closed    bool
	lastTurn  <-chan struct{}
}

// turn is a slot in a session's event delivery order. Each turn waits
// for the one issued before it to finish.
type turn struct {
	prev <-chan struct{}
	done chan struct{}
}

func (t turn) wait() {
	if t.prev != nil {
		<-t.prev
	}
}

func (t turn) finish() {
	close(t.done)
}

// nextTurn must be called with s.mu held
func (s *Session) nextTurn() turn {
	t := turn{prev: s.lastTurn, done: make(chan struct{})}
	s.lastTurn = t.done
	return t
}

// NewSession wraps a game for registration with a Store
func NewSession(id model.GameID, g *Game, now time.Time) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		game:      g,
		updatedAt: now,
	}
	// Called with s.mu held, from inside PlacePiece
	g.Subscribe(func(e model.Event) {
		s.pending = append(s.pending, e)
	})
	return s
}

// Snapshot copies the session's game state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Status returns the game status
func (s *Session) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status()
}

// Players returns the game's players
func (s *Session) Players() []*model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Players()
}

// Config returns the game's dimensions
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Config()
}

// UpdatedAt returns the time of the last successful move
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) place(column int, now time.Time) (Outcome, []model.Event, turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Outcome{}, nil, turn{}, model.ErrGameNotFound
	}

	out, err := s.game.PlacePiece(column)
	events := s.pending
	s.pending = nil
	if err != nil {
		return Outcome{}, nil, turn{}, err
	}
	s.updatedAt = now
	out.Snapshot = s.game.Snapshot()
	return out, events, s.nextTurn(), nil
}

// close stops the session accepting moves. It reports false if the
// session was already closed.
func (s *Session) close() (turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return turn{}, false
	}
	s.closed = true
	return s.nextTurn(), true
}

func (s *Session) reopen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = false
}

// Store holds sessions between requests
type Store interface {
	SaveSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id model.GameID) (*Session, error)
	DeleteSession(ctx context.Context, id model.GameID) error
	ListSessions(ctx context.Context) ([]*Session, error)
}

// Notifier receives every game event tagged with its session ID
type Notifier interface {
	Notify(ctx context.Context, id model.GameID, event model.Event)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(ctx context.Context, id model.GameID, event model.Event)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, id model.GameID, event model.Event) {
	f(ctx, id, event)
}

// Controller manages the set of live games and serialises moves per game
type Controller struct {
	store    Store
	clock    clock.Clock
	ids      ids.IDs
	defaults Config
	logger   *slog.Logger

	mu        sync.RWMutex
	notifiers []Notifier
}

// NewController creates a new GameController
func NewController(
	store Store,
	clock clock.Clock,
	ids ids.IDs,
	defaults Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:    store,
		clock:    clock,
		ids:      ids,
		defaults: defaults,
		logger:   logger,
	}
}

// AddNotifier registers a notifier for events from every game
func (c *Controller) AddNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifiers = append(c.notifiers, n)
}

// Defaults returns the dimensions used when a request leaves them unset
func (c *Controller) Defaults() Config {
	return c.defaults
}

// CreateGame starts a new game. Zero dimensions fall back to the
// controller defaults.
func (c *Controller) CreateGame(ctx context.Context, players []*model.Player, cfg Config) (*Session, error) {
	if cfg.Width == 0 {
		cfg.Width = c.defaults.Width
	}
	if cfg.Height == 0 {
		cfg.Height = c.defaults.Height
	}

	id := model.GameID(c.ids.NewID())
	logger := c.logger.With(slog.String("game_id", string(id)))

	g, err := New(players, cfg, logger)
	if err != nil {
		return nil, err
	}

	session := NewSession(id, g, c.clock.Now())
	if err := c.store.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("game created",
		slog.Int("player_count", len(players)),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
	)

	return session, nil
}

// GetSession retrieves a game by ID
func (c *Controller) GetSession(ctx context.Context, id model.GameID) (*Session, error) {
	return c.store.GetSession(ctx, id)
}

// ListGames returns every live game, oldest first
func (c *Controller) ListGames(ctx context.Context) ([]*Session, error) {
	sessions, err := c.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// PlacePiece drops the current player's piece into column
func (c *Controller) PlacePiece(ctx context.Context, id model.GameID, column int) (Outcome, error) {
	session, err := c.store.GetSession(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	out, events, t, err := session.place(column, c.clock.Now())
	if err != nil {
		c.logger.Debug("move rejected",
			slog.String("game_id", string(id)),
			slog.Int("column", column),
			slog.String("error", err.Error()),
		)
		return Outcome{}, err
	}

	t.wait()
	defer t.finish()
	for _, e := range events {
		c.notify(ctx, id, e)
	}
	return out, nil
}

// Rematch replaces a game with a fresh one for the same players and
// dimensions. The old game is removed and its watchers are told the new ID.
func (c *Controller) Rematch(ctx context.Context, id model.GameID) (*Session, error) {
	old, err := c.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	t, ok := old.close()
	if !ok {
		return nil, model.ErrGameNotFound
	}
	t.wait()
	defer t.finish()

	next, err := c.CreateGame(ctx, old.Players(), old.Config())
	if err != nil {
		old.reopen()
		return nil, err
	}

	if err := c.store.DeleteSession(ctx, id); err != nil {
		return nil, err
	}

	c.logger.Info("rematch started",
		slog.String("game_id", string(id)),
		slog.String("next_game_id", string(next.ID)),
	)

	c.notify(ctx, id, model.Event{
		Type:       model.EventRematch,
		Status:     old.Status(),
		NextGameID: next.ID,
	})
	return next, nil
}

// DeleteGame discards a game
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	session, err := c.store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	t, ok := session.close()
	if !ok {
		return model.ErrGameNotFound
	}
	t.wait()
	t.finish()

	if err := c.store.DeleteSession(ctx, id); err != nil {
		session.reopen()
		return err
	}
	c.logger.Info("game deleted", slog.String("game_id", string(id)))
	return nil
}

func (c *Controller) notify(ctx context.Context, id model.GameID, e model.Event) {
	c.mu.RLock()
	notifiers := append([]Notifier(nil), c.notifiers...)
	c.mu.RUnlock()

	for _, n := range notifiers {
		n.Notify(ctx, id, e)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, players []*model.Player, cfg Config) (*Session, error)
	GetSession(ctx context.Context, id model.GameID) (*Session, error)
	ListGames(ctx context.Context) ([]*Session, error)
	PlacePiece(ctx context.Context, id model.GameID, column int) (Outcome, error)
	Rematch(ctx context.Context, id model.GameID) (*Session, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	AddNotifier(n Notifier)
	Defaults() Config
}

var _ ControllerInterface = (*Controller)(nil)
