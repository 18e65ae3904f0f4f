package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	items []app.CartItem
	err   error
}

func (f fakeCart) GetCart(context.Context, string) ([]app.CartItem, error) {
	return f.items, f.err
}

type fakeCatalog struct {
	products map[string]app.Product
	calls    atomic.Int32
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (app.Product, error) {
	f.calls.Add(1)
	p, ok := f.products[id]
	if !ok {
		return app.Product{}, errors.New("not found")
	}
	return p, nil
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]app.Product{
		"1": {ID: "1", Name: "MacBook", Price: decimal.NewFromInt(2399), InStock: true, StockCount: 15},
		"3": {ID: "3", Name: "Clean Code", Price: decimal.RequireFromString("45.50"), InStock: true, StockCount: 100},
		"7": {ID: "7", Name: "Sold out", Price: decimal.NewFromInt(10), InStock: false},
	}}
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("prices lines in cart order", func(t *testing.T) {
		cat := newCatalog()
		svc := app.NewService(fakeCart{items: []app.CartItem{{ProductID: "3", Quantity: 2}, {ProductID: "1", Quantity: 1}}}, cat, 2)

		q, err := svc.Quote(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, q.Lines, 2)
		assert.Equal(t, "3", q.Lines[0].ProductID)
		assert.Equal(t, "91.00", q.Lines[0].LineTotal.Amount.StringFixed(2))
		assert.Equal(t, 3, q.ItemCount)
		assert.Equal(t, "$2490.00", q.Total.String())
		assert.True(t, q.Purchasable)
		assert.Equal(t, int32(2), cat.calls.Load())
	})

	t.Run("unavailable line blocks purchase", func(t *testing.T) {
		svc := app.NewService(fakeCart{items: []app.CartItem{{ProductID: "7", Quantity: 1}, {ProductID: "1", Quantity: 20}}}, newCatalog(), 0)

		q, err := svc.Quote(ctx, "s1")
		require.NoError(t, err)
		assert.False(t, q.Lines[0].Available)
		assert.False(t, q.Lines[1].Available)
		assert.False(t, q.Purchasable)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc := app.NewService(fakeCart{}, newCatalog(), 0)
		_, err := svc.Quote(ctx, "s1")
		assert.ErrorIs(t, err, app.ErrEmptyCart)
	})

	t.Run("unknown product fails the quote", func(t *testing.T) {
		svc := app.NewService(fakeCart{items: []app.CartItem{{ProductID: "404", Quantity: 1}}}, newCatalog(), 0)
		_, err := svc.Quote(ctx, "s1")
		assert.ErrorContains(t, err, "failed to get product 404")
	})

	t.Run("cart error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		svc := app.NewService(fakeCart{err: boom}, newCatalog(), 0)
		_, err := svc.Quote(ctx, "s1")
		assert.ErrorIs(t, err, boom)
	})
}
