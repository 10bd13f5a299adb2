package memory

import (
	"context"
	"sync"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

// Storage keeps game sessions in a process-local map
type Storage struct {
	mu       sync.RWMutex
	sessions map[model.GameID]*game.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.GameID]*game.Session),
	}
}

// Ensure Storage implements the interface
var _ game.Store = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *game.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.GameID) (*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*game.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions, nil
}
