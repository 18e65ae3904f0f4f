// Package storetest holds the behaviour every session Store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	chat "github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/session/app"
	"github.com/dwikikusuma/shoping-assistant/internal/session/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sample(id string) domain.Session {
	s := domain.New(id, "user-1", t0)
	s.Append(
		chat.NewUserMessage("m1", "I need a laptop", t0.Add(time.Second)),
		chat.Message{
			ID:        "m2",
			Content:   "Here are our top laptop recommendations:",
			Type:      chat.TypeBot,
			Timestamp: t0.Add(2 * time.Second),
			Actions:   []chat.Action{{Type: chat.ActionCheckout, Label: "Proceed to Checkout"}},
		},
	)
	s.Cart.Add(catalog.Product{ID: "1", Name: "MacBook", Price: 2399, Tags: []string{"laptop"}}, 2)
	return s
}

// Run exercises newStore against the Store contract.
func Run(t *testing.T, newStore func(t *testing.T) app.Store) {
	ctx := context.Background()

	t.Run("create then get round-trips", func(t *testing.T) {
		st := newStore(t)
		want := sample("s-1")
		require.NoError(t, st.Create(ctx, want))

		got, err := st.Get(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.UserID, got.UserID)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
		require.Len(t, got.Messages, 2)
		assert.Equal(t, chat.TypeBot, got.Messages[1].Type)
		assert.Equal(t, "Proceed to Checkout", got.Messages[1].Actions[0].Label)
		require.Len(t, got.Cart, 1)
		assert.Equal(t, 2, got.Cart[0].Quantity)
		assert.Equal(t, "MacBook", got.Cart[0].Product.Name)
	})

	t.Run("create duplicate fails", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, st.Create(ctx, sample("s-1")))
		assert.Error(t, st.Create(ctx, sample("s-1")))
	})

	t.Run("get unknown -> ErrNotFound", func(t *testing.T) {
		st := newStore(t)
		_, err := st.Get(ctx, "nope")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("update replaces document", func(t *testing.T) {
		st := newStore(t)
		s := sample("s-1")
		require.NoError(t, st.Create(ctx, s))

		s.Cart.Remove("1")
		s.Touch(t0.Add(time.Hour))
		require.NoError(t, st.Update(ctx, s))

		got, err := st.Get(ctx, "s-1")
		require.NoError(t, err)
		assert.Empty(t, got.Cart)
		assert.True(t, got.UpdatedAt.Equal(t0.Add(time.Hour)))
	})

	t.Run("update unknown -> ErrNotFound", func(t *testing.T) {
		st := newStore(t)
		assert.ErrorIs(t, st.Update(ctx, sample("ghost")), app.ErrNotFound)
	})

	t.Run("returned sessions are copies", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, st.Create(ctx, sample("s-1")))

		got, err := st.Get(ctx, "s-1")
		require.NoError(t, err)
		got.Cart[0].Quantity = 99
		got.Messages = append(got.Messages, chat.NewUserMessage("m3", "x", t0))

		again, err := st.Get(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, 2, again.Cart[0].Quantity)
		assert.Len(t, again.Messages, 2)
	})

	t.Run("delete", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, st.Create(ctx, sample("s-1")))
		require.NoError(t, st.Delete(ctx, "s-1"))

		_, err := st.Get(ctx, "s-1")
		assert.ErrorIs(t, err, app.ErrNotFound)
		assert.ErrorIs(t, st.Delete(ctx, "s-1"), app.ErrNotFound)
	})
}
