package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chat "github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/session/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
)

type Service struct {
	store Store
	locks *keyedMutex
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		locks: newKeyedMutex(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, userID string) (domain.Session, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Session{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	sess := domain.New(s.newID(), userID, s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Session, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Session{}, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.store.Delete(ctx, id)
}

// Mutate runs a read-modify-write on one session. Calls for the same id
// are serialized. fn reports whether it changed the session; unchanged
// sessions are not written back and keep their UpdatedAt. If fn fails
// nothing is written.
func (s *Service) Mutate(ctx context.Context, id string, fn func(*domain.Session) (bool, error)) (domain.Session, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Session{}, ErrNotFound
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	changed, err := fn(&sess)
	if err != nil {
		return domain.Session{}, err
	}
	if !changed {
		return sess, nil
	}

	sess.Touch(s.now())
	if err := s.store.Update(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

// AppendMessages appends msgs in order as one write.
func (s *Service) AppendMessages(ctx context.Context, id string, msgs ...chat.Message) (domain.Session, error) {
	return s.Mutate(ctx, id, func(sess *domain.Session) (bool, error) {
		sess.Append(msgs...)
		return len(msgs) > 0, nil
	})
}

func (s *Service) ClearMessages(ctx context.Context, id string) (domain.Session, error) {
	return s.Mutate(ctx, id, func(sess *domain.Session) (bool, error) {
		if len(sess.Messages) == 0 {
			return false, nil
		}
		sess.Messages = []chat.Message{}
		return true, nil
	})
}
