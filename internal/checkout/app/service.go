package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/shoping-assistant/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type CartReader interface {
	GetCart(ctx context.Context, sessionID string) ([]CartItem, error)
}

type CartItem struct {
	ProductID string
	Quantity  int
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	InStock    bool
	StockCount int
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

var ErrEmptyCart = errors.New("cart is empty")

// Quote prices a session cart against the current catalog. Lines are
// resolved concurrently and keep cart order.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	items, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{
					Currency: domain.CurrencyUSD,
					Amount:   product.Price,
				},
				LineTotal: domain.Money{
					Currency: domain.CurrencyUSD,
					Amount:   product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
				},
				Available: product.InStock && it.Quantity <= product.StockCount,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	quote := domain.Quote{
		SessionID:   sessionID,
		Lines:       lines,
		Total:       domain.Money{Currency: domain.CurrencyUSD, Amount: decimal.Zero},
		Purchasable: true,
	}
	for _, line := range lines {
		quote.ItemCount += line.Quantity
		quote.Total.Amount = quote.Total.Amount.Add(line.LineTotal.Amount)
		if !line.Available {
			quote.Purchasable = false
		}
	}

	return quote, nil
}
