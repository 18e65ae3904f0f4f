package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, sessionID string) ([]checkoutapp.CartItem, error) {
	view, err := r.svc.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
		})
	}
	return items, nil
}
