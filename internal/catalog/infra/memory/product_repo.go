package memory

import (
	"context"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
)

// ProductRepo serves a fixed product list. It is read-only after
// construction, so no locking is needed.
type ProductRepo struct {
	products []domain.Product
	byID     map[string]int
}

func NewProductRepo(products []domain.Product) *ProductRepo {
	r := &ProductRepo{
		products: append([]domain.Product(nil), products...),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), r.products...), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[i], nil
}
