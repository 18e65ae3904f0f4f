package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// Filter returns every product accepted by pred, in catalog order.
func (s *Service) Filter(ctx context.Context, pred func(domain.Product) bool) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Product, error) {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return []domain.Product{}, nil
	}
	return s.Filter(ctx, q.Matches)
}

// ByCategory matches category and subcategory exactly; an empty
// subcategory matches any.
func (s *Service) ByCategory(ctx context.Context, category, subcategory string) ([]domain.Product, error) {
	return s.Filter(ctx, func(p domain.Product) bool {
		return p.Category == category && (subcategory == "" || p.Subcategory == subcategory)
	})
}

func (s *Service) FindByID(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// Categories returns the distinct categories in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}
