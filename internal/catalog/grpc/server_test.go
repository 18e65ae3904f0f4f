package grpc_test

import (
	"context"
	"testing"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	cgrpc "github.com/dwikikusuma/shoping-assistant/internal/catalog/grpc"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/infra/memory"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/seed"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson/grpcjsontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func dialCatalog(t *testing.T) *grpc.ClientConn {
	t.Helper()
	products, err := seed.Default()
	require.NoError(t, err)
	svc := app.NewService(memory.NewProductRepo(products))
	return grpcjsontest.Dial(t, func(gs *grpc.Server) {
		cgrpc.Register(gs, cgrpc.NewServer(svc))
	})
}

func TestCatalogServer(t *testing.T) {
	conn := dialCatalog(t)
	ctx := context.Background()

	t.Run("Search", func(t *testing.T) {
		var resp cgrpc.SearchResponse
		err := conn.Invoke(ctx, "/"+cgrpc.ServiceName+"/Search", &cgrpc.SearchRequest{Query: "smartphone"}, &resp)
		require.NoError(t, err)
		require.Len(t, resp.Products, 2)
		assert.Equal(t, "iPhone 15 Pro Max", resp.Products[0].Name)
	})

	t.Run("GetProduct", func(t *testing.T) {
		var resp cgrpc.GetProductResponse
		err := conn.Invoke(ctx, "/"+cgrpc.ServiceName+"/GetProduct", &cgrpc.GetProductRequest{ID: "1"}, &resp)
		require.NoError(t, err)
		assert.Equal(t, "Apple", resp.Product.Brand)
	})

	t.Run("GetProduct unknown -> NotFound", func(t *testing.T) {
		var resp cgrpc.GetProductResponse
		err := conn.Invoke(ctx, "/"+cgrpc.ServiceName+"/GetProduct", &cgrpc.GetProductRequest{ID: "nope"}, &resp)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("GetProduct blank -> InvalidArgument", func(t *testing.T) {
		var resp cgrpc.GetProductResponse
		err := conn.Invoke(ctx, "/"+cgrpc.ServiceName+"/GetProduct", &cgrpc.GetProductRequest{}, &resp)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("ListCategories", func(t *testing.T) {
		var resp cgrpc.ListCategoriesResponse
		err := conn.Invoke(ctx, "/"+cgrpc.ServiceName+"/ListCategories", &cgrpc.ListCategoriesRequest{}, &resp)
		require.NoError(t, err)
		assert.Equal(t, []string{"Electronics", "Books"}, resp.Categories)
	})
}
