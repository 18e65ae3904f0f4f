package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	chat "github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/session/app"
	"github.com/dwikikusuma/shoping-assistant/internal/session/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/session/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// stepClock advances one second per call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestService(t *testing.T) (*app.Service, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := 0
	var mu sync.Mutex
	svc := app.NewService(memory.NewSessionStore(),
		app.WithClock(clock.Now),
		app.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return svc, clock
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("new session is empty", func(t *testing.T) {
		s, err := svc.Create(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "id-1", s.ID)
		assert.Equal(t, "user-1", s.UserID)
		assert.Empty(t, s.Messages)
		assert.Empty(t, s.Cart)
		assert.Equal(t, s.CreatedAt, s.UpdatedAt)

		got, err := svc.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
	})

	t.Run("blank user -> ErrInvalidInput", func(t *testing.T) {
		_, err := svc.Create(ctx, "  ")
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})
}

func TestGetUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestAppendMessages(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)
	s, err := svc.Create(ctx, "u")
	require.NoError(t, err)

	at := clock.Now()
	got, err := svc.AppendMessages(ctx, s.ID,
		chat.NewUserMessage("a", "hi", at),
		chat.NewBotMessage("b", "hello", at),
	)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "a", got.Messages[0].ID)
	assert.Equal(t, "b", got.Messages[1].ID)
	assert.True(t, got.UpdatedAt.After(s.UpdatedAt))

	_, err = svc.AppendMessages(ctx, "missing", chat.NewUserMessage("c", "x", at))
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("unchanged session keeps UpdatedAt", func(t *testing.T) {
		svc, _ := newTestService(t)
		s, err := svc.Create(ctx, "u")
		require.NoError(t, err)

		got, err := svc.Mutate(ctx, s.ID, func(*domain.Session) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.Equal(t, s.UpdatedAt, got.UpdatedAt)

		stored, err := svc.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.UpdatedAt, stored.UpdatedAt)
	})

	t.Run("fn error writes nothing", func(t *testing.T) {
		svc, _ := newTestService(t)
		s, err := svc.Create(ctx, "u")
		require.NoError(t, err)

		boom := errors.New("boom")
		_, err = svc.Mutate(ctx, s.ID, func(sess *domain.Session) (bool, error) {
			sess.UserID = "changed"
			return true, boom
		})
		assert.ErrorIs(t, err, boom)

		stored, err := svc.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "u", stored.UserID)
	})

	t.Run("concurrent writers do not lose updates", func(t *testing.T) {
		svc, clock := newTestService(t)
		s, err := svc.Create(ctx, "u")
		require.NoError(t, err)

		const N = 50
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < N; i++ {
			g.Go(func() error {
				_, err := svc.AppendMessages(gctx, s.ID, chat.NewUserMessage(fmt.Sprintf("m%d", i), "x", clock.Now()))
				return err
			})
		}
		require.NoError(t, g.Wait())

		stored, err := svc.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Messages, N)
	})
}

func TestClearMessages(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)
	s, err := svc.Create(ctx, "u")
	require.NoError(t, err)

	_, err = svc.AppendMessages(ctx, s.ID, chat.NewUserMessage("a", "hi", clock.Now()))
	require.NoError(t, err)

	got, err := svc.ClearMessages(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)

	again, err := svc.ClearMessages(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, got.UpdatedAt, again.UpdatedAt)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	s, err := svc.Create(ctx, "u")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, s.ID))
	_, err = svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, app.ErrNotFound)
}
