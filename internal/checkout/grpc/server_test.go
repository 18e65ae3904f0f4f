package grpc_test

import (
	"context"
	"fmt"
	"testing"

	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/shoping-assistant/internal/checkout/grpc"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson/grpcjsontest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeCarts map[string][]app.CartItem

func (f fakeCarts) GetCart(_ context.Context, sessionID string) ([]app.CartItem, error) {
	items, ok := f[sessionID]
	if !ok {
		return nil, cartapp.ErrSessionNotFound
	}
	return items, nil
}

type fakeCatalog map[string]app.Product

func (f fakeCatalog) GetProduct(_ context.Context, id string) (app.Product, error) {
	p, ok := f[id]
	if !ok {
		return app.Product{}, catalogapp.ErrNotFound
	}
	return p, nil
}

func TestCheckoutServer(t *testing.T) {
	ctx := context.Background()

	carts := fakeCarts{
		"full":  {{ProductID: "3", Quantity: 2}, {ProductID: "6", Quantity: 1}},
		"empty": {},
		"stale": {{ProductID: "gone", Quantity: 1}},
	}
	catalog := fakeCatalog{
		"3": {ID: "3", Name: "Clean Code: A Handbook", Price: decimal.NewFromInt(45), InStock: true, StockCount: 50},
		"6": {ID: "6", Name: "The Pragmatic Programmer", Price: decimal.NewFromInt(52), InStock: true, StockCount: 35},
	}

	conn := grpcjsontest.Dial(t, func(gs *grpc.Server) {
		checkoutgrpc.Register(gs, checkoutgrpc.NewServer(app.NewService(carts, catalog, 2)))
	})
	method := "/" + checkoutgrpc.ServiceName + "/Quote"

	t.Run("Quote -> priced lines", func(t *testing.T) {
		var resp checkoutgrpc.QuoteResponse
		require.NoError(t, conn.Invoke(ctx, method, &checkoutgrpc.QuoteRequest{SessionID: "full"}, &resp))

		q := resp.Quote
		require.Len(t, q.Lines, 2)
		assert.Equal(t, "3", q.Lines[0].ProductID)
		assert.Equal(t, 3, q.ItemCount)
		assert.Equal(t, "$142.00", q.Total.String())
		assert.True(t, q.Purchasable)
	})

	for _, tc := range []struct {
		name      string
		sessionID string
		want      codes.Code
	}{
		{"empty cart -> NotFound", "empty", codes.NotFound},
		{"unknown session -> NotFound", "ghost", codes.NotFound},
		{"product gone from catalog -> NotFound", "stale", codes.NotFound},
		{"blank id -> InvalidArgument", "", codes.InvalidArgument},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var resp checkoutgrpc.QuoteResponse
			err := conn.Invoke(ctx, method, &checkoutgrpc.QuoteRequest{SessionID: tc.sessionID}, &resp)
			require.Error(t, err)
			assert.Equal(t, tc.want, status.Code(err), fmt.Sprint(err))
		})
	}
}
