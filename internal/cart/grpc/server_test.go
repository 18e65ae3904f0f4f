package grpc_test

import (
	"context"
	"testing"

	"github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/shoping-assistant/internal/cart/grpc"
	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	catalogmem "github.com/dwikikusuma/shoping-assistant/internal/catalog/infra/memory"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/seed"
	sessionapp "github.com/dwikikusuma/shoping-assistant/internal/session/app"
	sessionmem "github.com/dwikikusuma/shoping-assistant/internal/session/infra/memory"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson/grpcjsontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func method(name string) string { return "/" + cartgrpc.ServiceName + "/" + name }

func TestCartServer(t *testing.T) {
	ctx := context.Background()
	products, err := seed.Default()
	require.NoError(t, err)

	sessions := sessionapp.NewService(sessionmem.NewSessionStore())
	sess, err := sessions.Create(ctx, "user-1")
	require.NoError(t, err)

	svc := app.NewService(sessions, catalogapp.NewService(catalogmem.NewProductRepo(products)), nil)
	conn := grpcjsontest.Dial(t, func(gs *grpc.Server) {
		cartgrpc.Register(gs, cartgrpc.NewServer(svc))
	})

	t.Run("AddItem", func(t *testing.T) {
		var resp cartgrpc.CartResponse
		err := conn.Invoke(ctx, method("AddItem"), &cartgrpc.UpdateCartItemRequest{SessionID: sess.ID, ProductID: "4", Quantity: 2}, &resp)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Cart.ItemCount)
		assert.Equal(t, "1998.00", resp.Cart.TotalPrice.StringFixed(2))
	})

	t.Run("UpdateItem", func(t *testing.T) {
		var resp cartgrpc.CartResponse
		err := conn.Invoke(ctx, method("UpdateItem"), &cartgrpc.UpdateCartItemRequest{SessionID: sess.ID, ProductID: "4", Quantity: 1}, &resp)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Cart.ItemCount)
	})

	t.Run("GetCart", func(t *testing.T) {
		var resp cartgrpc.CartResponse
		err := conn.Invoke(ctx, method("GetCart"), &cartgrpc.SessionID{SessionID: sess.ID}, &resp)
		require.NoError(t, err)
		require.Len(t, resp.Cart.Items, 1)
		assert.Equal(t, "Dell XPS 13", resp.Cart.Items[0].Product.Name)
	})

	t.Run("RemoveItem", func(t *testing.T) {
		var resp cartgrpc.CartResponse
		err := conn.Invoke(ctx, method("RemoveItem"), &cartgrpc.RemoveCartItemRequest{SessionID: sess.ID, ProductID: "4"}, &resp)
		require.NoError(t, err)
		assert.Empty(t, resp.Cart.Items)
	})

	t.Run("ClearCart", func(t *testing.T) {
		var resp cartgrpc.CartResponse
		err := conn.Invoke(ctx, method("ClearCart"), &cartgrpc.SessionID{SessionID: sess.ID}, &resp)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Cart.ItemCount)
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name   string
			method string
			req    any
			want   codes.Code
		}{
			{"unknown product", "AddItem", &cartgrpc.UpdateCartItemRequest{SessionID: sess.ID, ProductID: "999"}, codes.NotFound},
			{"unknown session", "GetCart", &cartgrpc.SessionID{SessionID: "ghost"}, codes.NotFound},
			{"missing item", "UpdateItem", &cartgrpc.UpdateCartItemRequest{SessionID: sess.ID, ProductID: "1", Quantity: 3}, codes.NotFound},
			{"blank session", "AddItem", &cartgrpc.UpdateCartItemRequest{ProductID: "1"}, codes.InvalidArgument},
			{"blank product", "AddItem", &cartgrpc.UpdateCartItemRequest{SessionID: sess.ID}, codes.InvalidArgument},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				var resp cartgrpc.CartResponse
				err := conn.Invoke(ctx, method(tc.method), tc.req, &resp)
				assert.Equal(t, tc.want, status.Code(err))
			})
		}
	})
}
