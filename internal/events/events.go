// Package events publishes domain events about sessions, chat and carts.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	SessionCreated  Type = "session.created"
	ChatExchanged   Type = "chat.exchanged"
	CartItemAdded   Type = "cart.item_added"
	CartItemUpdated Type = "cart.item_updated"
	CartItemRemoved Type = "cart.item_removed"
	CartCleared     Type = "cart.cleared"
)

type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	SessionID  string         `json:"sessionId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(t Type, sessionID string, data map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Emit publishes e and logs, rather than returns, any failure.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "event publish failed",
			slog.String("type", string(e.Type)),
			slog.String("session_id", e.SessionID),
			slog.Any("err", err),
		)
	}
}

// LogPublisher writes events to a slog logger. It is the fallback when no
// broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.log.InfoContext(ctx, "event",
		slog.String("id", e.ID),
		slog.String("type", string(e.Type)),
		slog.String("session_id", e.SessionID),
		slog.Any("data", e.Data),
	)
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
