package domain

import (
	"time"

	cart "github.com/dwikikusuma/shoping-assistant/internal/cart/domain"
	chat "github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
)

// Session holds one user's chat history and cart. Its JSON form is the
// blob clients may persist and the document the redis store writes.
type Session struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Messages  []chat.Message `json:"messages"`
	Cart      cart.Cart      `json:"cart"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func New(id, userID string, now time.Time) Session {
	return Session{
		ID:        id,
		UserID:    userID,
		Messages:  []chat.Message{},
		Cart:      cart.Cart{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch advances UpdatedAt to now. It never moves backwards, so a clock
// step does not break UpdatedAt >= CreatedAt.
func (s *Session) Touch(now time.Time) {
	if now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}

// Append adds msgs to the history and touches the session with the
// latest message timestamp.
func (s *Session) Append(msgs ...chat.Message) {
	for _, m := range msgs {
		s.Messages = append(s.Messages, m)
		s.Touch(m.Timestamp)
	}
}

// Clone returns a copy that shares no slices with s.
func (s Session) Clone() Session {
	out := s
	out.Messages = append([]chat.Message(nil), s.Messages...)
	out.Cart = append(cart.Cart(nil), s.Cart...)
	if out.Messages == nil {
		out.Messages = []chat.Message{}
	}
	if out.Cart == nil {
		out.Cart = cart.Cart{}
	}
	return out
}
