package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dwikikusuma/shoping-assistant/internal/session/app"
	"github.com/dwikikusuma/shoping-assistant/internal/session/domain"
)

// SessionStore keeps sessions in process memory. Values are cloned on the
// way in and out so callers never share slices with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return fmt.Errorf("session %q already exists", sess.ID)
	}
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, app.ErrNotFound
	}
	return sess.Clone(), nil
}

func (s *SessionStore) Update(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return app.ErrNotFound
	}
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return app.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
