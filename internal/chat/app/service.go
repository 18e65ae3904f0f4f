package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dwikikusuma/shoping-assistant/internal/chat/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/events"
	sessionapp "github.com/dwikikusuma/shoping-assistant/internal/session/app"
	session "github.com/dwikikusuma/shoping-assistant/internal/session/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
)

const tracerName = "github.com/dwikikusuma/shoping-assistant/internal/chat/app"

// Sessions is the session service the orchestrator drives.
type Sessions interface {
	Create(ctx context.Context, userID string) (session.Session, error)
	Get(ctx context.Context, id string) (session.Session, error)
	AppendMessages(ctx context.Context, id string, msgs ...domain.Message) (session.Session, error)
	ClearMessages(ctx context.Context, id string) (session.Session, error)
	Delete(ctx context.Context, id string) error
}

// Exchange is one user message and the bot reply to it.
type Exchange struct {
	UserMessage domain.Message `json:"userMessage"`
	BotResponse domain.Message `json:"botResponse"`
}

type Service struct {
	sessions Sessions
	router   *Router
	events   events.Publisher
	tracer   trace.Tracer

	thinkMin time.Duration
	thinkMax time.Duration
	sleep    func(time.Duration)
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

// WithThinkDelay sets the pause before each reply to a random duration in
// [lo, hi]. A non-positive hi disables it.
func WithThinkDelay(lo, hi time.Duration) Option {
	return func(s *Service) {
		if hi <= 0 {
			s.thinkMin, s.thinkMax = 0, 0
			return
		}
		if hi < lo {
			hi = lo
		}
		s.thinkMin, s.thinkMax = lo, hi
	}
}

func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Service) { s.sleep = sleep }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(sessions Sessions, catalog Catalog, pub events.Publisher, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		events:   pub,
		tracer:   otel.Tracer(tracerName),
		sleep:    time.Sleep,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = NewRouter(catalog, s.newID, s.now)
	return s
}

func (s *Service) StartSession(ctx context.Context, userID string) (session.Session, error) {
	sess, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return session.Session{}, mapSessionErr(err)
	}

	slog.InfoContext(ctx, "session started",
		slog.String("session_id", sess.ID),
		slog.String("user_id", userID),
	)
	events.Emit(ctx, s.events, events.New(events.SessionCreated, sess.ID, map[string]any{"userId": userID}))
	return sess, nil
}

func (s *Service) Session(ctx context.Context, id string) (session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return session.Session{}, mapSessionErr(err)
	}
	return sess, nil
}

// Send records text as a user message, produces the bot reply and appends
// both to the session in one write. An unknown session is rejected before
// anything is written. Once accepted, the exchange runs to completion even
// if ctx is cancelled.
func (s *Service) Send(ctx context.Context, sessionID, text string) (Exchange, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Send", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session lookup failed")
		return Exchange{}, mapSessionErr(err)
	}

	ctx = context.WithoutCancel(ctx)
	userMsg := domain.NewUserMessage(s.newID(), text, s.now())

	s.think(ctx)

	// The cart may have changed while the reply was pending.
	if sess, err = s.sessions.Get(ctx, sessionID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session reload failed")
		return Exchange{}, mapSessionErr(err)
	}

	bot, intent := s.router.Reply(ctx, text, sess.Cart)
	span.SetAttributes(
		attribute.String("chat.intent", string(intent)),
		attribute.Int("chat.products", len(bot.Products)),
	)

	if _, err := s.sessions.AppendMessages(ctx, sessionID, userMsg, bot); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		return Exchange{}, mapSessionErr(err)
	}

	slog.DebugContext(ctx, "chat exchange",
		slog.String("session_id", sessionID),
		slog.String("intent", string(intent)),
		slog.Int("products", len(bot.Products)),
	)
	events.Emit(ctx, s.events, events.New(events.ChatExchanged, sessionID, map[string]any{
		"intent":        string(intent),
		"userMessageId": userMsg.ID,
		"botMessageId":  bot.ID,
	}))

	return Exchange{UserMessage: userMsg, BotResponse: bot}, nil
}

// Welcome appends the greeting for name and returns it.
func (s *Service) Welcome(ctx context.Context, sessionID, name string) (domain.Message, error) {
	msg := domain.NewBotMessage(s.newID(), fmt.Sprintf(
		"Hello %s! 👋 I'm your shopping assistant. I can help you find products, answer questions, and assist with your purchase. What are you looking for today?",
		name,
	), s.now())

	if _, err := s.sessions.AppendMessages(ctx, sessionID, msg); err != nil {
		return domain.Message{}, mapSessionErr(err)
	}
	return msg, nil
}

func (s *Service) ClearHistory(ctx context.Context, sessionID string) (session.Session, error) {
	sess, err := s.sessions.ClearMessages(ctx, sessionID)
	if err != nil {
		return session.Session{}, mapSessionErr(err)
	}
	return sess, nil
}

// EndSession discards the session with its history and cart.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return mapSessionErr(err)
	}
	slog.InfoContext(ctx, "session ended", slog.String("session_id", sessionID))
	return nil
}

func (s *Service) think(ctx context.Context) {
	d := s.thinkMin
	if spread := s.thinkMax - s.thinkMin; spread > 0 {
		d += rand.N(spread + 1)
	}
	if d <= 0 {
		return
	}
	_, sp := s.tracer.Start(ctx, "chat.think", trace.WithAttributes(attribute.Int64("delay_ms", d.Milliseconds())))
	s.sleep(d)
	sp.End()
}

func mapSessionErr(err error) error {
	switch {
	case errors.Is(err, sessionapp.ErrNotFound):
		return ErrSessionNotFound
	case errors.Is(err, sessionapp.ErrInvalidInput):
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return err
}
