package app

import (
	"context"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
)

// ProductRepo returns products in catalog insertion order.
type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
}
