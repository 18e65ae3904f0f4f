package domain

import (
	"testing"
	"time"

	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	chat "github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
	"github.com/stretchr/testify/assert"
)

func TestTouchNeverGoesBack(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := New("s1", "u1", t0)

	s.Touch(t0.Add(-time.Minute))
	assert.Equal(t, t0, s.UpdatedAt)

	s.Touch(t0.Add(time.Minute))
	assert.Equal(t, t0.Add(time.Minute), s.UpdatedAt)
	assert.False(t, s.UpdatedAt.Before(s.CreatedAt))
}

func TestAppendTracksLatestMessage(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := New("s1", "u1", t0)

	s.Append(
		chat.NewUserMessage("m1", "hi", t0.Add(time.Second)),
		chat.NewBotMessage("m2", "hello", t0.Add(2*time.Second)),
	)

	assert.Len(t, s.Messages, 2)
	for _, m := range s.Messages {
		assert.False(t, s.UpdatedAt.Before(m.Timestamp))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New("s1", "u1", time.Now())
	s.Cart.Add(catalog.Product{ID: "1", Price: 10}, 1)

	c := s.Clone()
	c.Cart.SetQuantity("1", 5)
	c.Append(chat.NewUserMessage("m1", "x", time.Now()))

	assert.Equal(t, 1, s.Cart[0].Quantity)
	assert.Empty(t, s.Messages)
}
