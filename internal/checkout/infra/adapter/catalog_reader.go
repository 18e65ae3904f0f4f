package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	"github.com/shopspring/decimal"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.svc.FindByID(ctx, productID)
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      decimal.NewFromFloat(p.Price),
		InStock:    p.InStock,
		StockCount: p.StockCount,
	}, nil
}
