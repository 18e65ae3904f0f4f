package adapter_test

import (
	"context"
	"testing"

	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	catalogmem "github.com/dwikikusuma/shoping-assistant/internal/catalog/infra/memory"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/seed"
	checkoutapp "github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	"github.com/dwikikusuma/shoping-assistant/internal/checkout/infra/adapter"
	sessionapp "github.com/dwikikusuma/shoping-assistant/internal/session/app"
	sessionmem "github.com/dwikikusuma/shoping-assistant/internal/session/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteOverServices(t *testing.T) {
	ctx := context.Background()
	products, err := seed.Default()
	require.NoError(t, err)

	catalog := catalogapp.NewService(catalogmem.NewProductRepo(products))
	sessions := sessionapp.NewService(sessionmem.NewSessionStore())
	carts := cartapp.NewService(sessions, catalog, nil)

	sess, err := sessions.Create(ctx, "u")
	require.NoError(t, err)
	_, err = carts.Add(ctx, sess.ID, "6", 2)
	require.NoError(t, err)
	_, err = carts.Add(ctx, sess.ID, "2", 1)
	require.NoError(t, err)

	svc := checkoutapp.NewService(adapter.NewCartServiceReader(carts), adapter.NewCatalogServiceReader(catalog), 4)
	q, err := svc.Quote(ctx, sess.ID)
	require.NoError(t, err)

	require.Len(t, q.Lines, 2)
	assert.Equal(t, "The Pragmatic Programmer", q.Lines[0].Name)
	assert.Equal(t, "$1303.00", q.Total.String())
	assert.Equal(t, 3, q.ItemCount)
	assert.True(t, q.Purchasable)

	_, err = svc.Quote(ctx, "ghost")
	assert.ErrorIs(t, err, cartapp.ErrSessionNotFound)
}
