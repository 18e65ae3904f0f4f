package app

import (
	"context"

	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"github.com/dwikikusuma/shoping-assistant/internal/session/domain"
)

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	FindByID(ctx context.Context, id string) (catalog.Product, error)
}

// Sessions loads and serially mutates the session that owns a cart.
type Sessions interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Mutate(ctx context.Context, id string, fn func(*domain.Session) (bool, error)) (domain.Session, error)
}
