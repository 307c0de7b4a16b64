package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-live/internal/domain/session"
)

// SessionStore keeps the signed-in user for the lifetime of the process only.
type SessionStore struct {
	mu   sync.RWMutex
	user *session.User
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load(_ context.Context) (session.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return session.User{}, false, nil
	}
	return *s.user, true, nil
}

func (s *SessionStore) Save(_ context.Context, user session.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	return nil
}
