package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

// SessionStore is an in-memory SessionStore implementation with TTL-aware
// reads. Sessions live as long as the process; multi-instance deployments
// would need a shared store behind the same port.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]*domain.Session{},
		now:      time.Now,
	}
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok || session.Expired(s.now()) {
		return nil, ports.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) ([]string, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var ended []string
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			ended = append(ended, id)
		}
	}
	return ended, nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
