package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/cart/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/events"
	sessionapp "github.com/dwikikusuma/shoping-assistant/internal/session/app"
	session "github.com/dwikikusuma/shoping-assistant/internal/session/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("item not in cart")
)

// View is a cart with its derived totals.
type View struct {
	Items      domain.Cart
	ItemCount  int
	TotalPrice decimal.Decimal
}

func NewView(c domain.Cart) View {
	if c == nil {
		c = domain.Cart{}
	}
	return View{Items: c, ItemCount: c.ItemCount(), TotalPrice: c.TotalPrice()}
}

// MarshalJSON renders the total both as a number and as a two-decimal
// display string.
func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Items      domain.Cart `json:"items"`
		ItemCount  int         `json:"itemCount"`
		TotalPrice float64     `json:"totalPrice"`
		Total      string      `json:"total"`
	}{
		Items:      v.Items,
		ItemCount:  v.ItemCount,
		TotalPrice: v.TotalPrice.InexactFloat64(),
		Total:      domain.FormatPrice(v.TotalPrice),
	})
}

// UnmarshalJSON reads what MarshalJSON writes.
func (v *View) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items     domain.Cart `json:"items"`
		ItemCount int         `json:"itemCount"`
		Total     string      `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	total, err := decimal.NewFromString(raw.Total)
	if err != nil {
		return fmt.Errorf("cart total: %w", err)
	}
	*v = View{Items: raw.Items, ItemCount: raw.ItemCount, TotalPrice: total}
	return nil
}

type Service struct {
	sessions Sessions
	products ProductLookup
	events   events.Publisher
}

func NewService(sessions Sessions, products ProductLookup, pub events.Publisher) *Service {
	return &Service{
		sessions: sessions,
		products: products,
		events:   pub,
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return View{}, mapSessionErr(err)
	}
	return NewView(sess.Cart), nil
}

// Add puts qty of productID in the session cart, merging with an existing
// line. A non-positive qty counts as 1.
func (s *Service) Add(ctx context.Context, sessionID, productID string, qty int) (View, error) {
	if strings.TrimSpace(productID) == "" {
		return View{}, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if qty <= 0 {
		qty = 1
	}

	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return View{}, mapSessionErr(err)
	}

	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return View{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if err != nil {
		return View{}, fmt.Errorf("lookup product %s: %w", productID, err)
	}

	sess, err := s.sessions.Mutate(ctx, sessionID, func(sess *session.Session) (bool, error) {
		sess.Cart.Add(product, qty)
		return true, nil
	})
	if err != nil {
		return View{}, mapSessionErr(err)
	}

	slog.DebugContext(ctx, "cart item added",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("quantity", qty),
	)
	events.Emit(ctx, s.events, events.New(events.CartItemAdded, sessionID, map[string]any{
		"productId": productID,
		"quantity":  qty,
	}))
	return NewView(sess.Cart), nil
}

// Update replaces the quantity of an existing line; qty <= 0 removes it.
func (s *Service) Update(ctx context.Context, sessionID, productID string, qty int) (View, error) {
	sess, err := s.sessions.Mutate(ctx, sessionID, func(sess *session.Session) (bool, error) {
		if !sess.Cart.SetQuantity(productID, qty) {
			return false, fmt.Errorf("%w: %s", ErrItemNotFound, productID)
		}
		return true, nil
	})
	if err != nil {
		return View{}, mapSessionErr(err)
	}

	typ := events.CartItemUpdated
	if qty <= 0 {
		typ = events.CartItemRemoved
	}
	events.Emit(ctx, s.events, events.New(typ, sessionID, map[string]any{
		"productId": productID,
		"quantity":  qty,
	}))
	return NewView(sess.Cart), nil
}

// Remove drops productID from the cart. Removing an absent product is a
// no-op and leaves the session untouched.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (View, error) {
	removed := false
	sess, err := s.sessions.Mutate(ctx, sessionID, func(sess *session.Session) (bool, error) {
		removed = sess.Cart.Remove(productID)
		return removed, nil
	})
	if err != nil {
		return View{}, mapSessionErr(err)
	}

	if removed {
		events.Emit(ctx, s.events, events.New(events.CartItemRemoved, sessionID, map[string]any{
			"productId": productID,
		}))
	}
	return NewView(sess.Cart), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) (View, error) {
	cleared := false
	sess, err := s.sessions.Mutate(ctx, sessionID, func(sess *session.Session) (bool, error) {
		if len(sess.Cart) == 0 {
			return false, nil
		}
		sess.Cart = domain.Cart{}
		cleared = true
		return true, nil
	})
	if err != nil {
		return View{}, mapSessionErr(err)
	}

	if cleared {
		events.Emit(ctx, s.events, events.New(events.CartCleared, sessionID, nil))
	}
	return NewView(sess.Cart), nil
}

func mapSessionErr(err error) error {
	if errors.Is(err, sessionapp.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
