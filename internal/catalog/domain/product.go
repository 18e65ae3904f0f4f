package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Product struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description" yaml:"description"`
	Price          float64           `json:"price" yaml:"price"`
	OriginalPrice  *float64          `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Category       string            `json:"category" yaml:"category"`
	Subcategory    string            `json:"subcategory" yaml:"subcategory"`
	Brand          string            `json:"brand" yaml:"brand"`
	ImageURL       string            `json:"imageUrl" yaml:"imageUrl"`
	Images         []string          `json:"images" yaml:"images"`
	Rating         float64           `json:"rating" yaml:"rating"`
	ReviewCount    int               `json:"reviewCount" yaml:"reviewCount"`
	InStock        bool              `json:"inStock" yaml:"inStock"`
	StockCount     int               `json:"stockCount" yaml:"stockCount"`
	Specifications map[string]string `json:"specifications" yaml:"specifications"`
	Tags           []string          `json:"tags" yaml:"tags"`
	Discount       *int              `json:"discount,omitempty" yaml:"discount,omitempty"`
}

// Validate checks the load-time invariants of a catalog record.
func (p Product) Validate() error {
	var errs []error
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if p.Price < 0 {
		errs = append(errs, fmt.Errorf("price %.2f is negative", p.Price))
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		errs = append(errs, fmt.Errorf("original price %.2f is below price %.2f", *p.OriginalPrice, p.Price))
	}
	if p.Rating < 0 || p.Rating > 5 {
		errs = append(errs, fmt.Errorf("rating %.1f out of range 0-5", p.Rating))
	}
	if p.ReviewCount < 0 {
		errs = append(errs, fmt.Errorf("review count %d is negative", p.ReviewCount))
	}
	if p.StockCount < 0 {
		errs = append(errs, fmt.Errorf("stock count %d is negative", p.StockCount))
	}
	if !p.InStock && p.StockCount != 0 {
		errs = append(errs, fmt.Errorf("stock count %d on an out-of-stock product", p.StockCount))
	}
	if p.Discount != nil && (*p.Discount < 0 || *p.Discount > 100) {
		errs = append(errs, fmt.Errorf("discount %d out of range 0-100", *p.Discount))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("product %q: %w", p.ID, errors.Join(errs...))
}

// SearchQuery holds the conjunctive filters of a catalog search.
// Zero values disable the matching filter.
type SearchQuery struct {
	Text     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Matches reports whether p passes every filter set on q.
func (q SearchQuery) Matches(p Product) bool {
	if q.Text != "" && !matchesText(p, strings.ToLower(q.Text)) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

func matchesText(p Product, text string) bool {
	if strings.Contains(strings.ToLower(p.Name), text) ||
		strings.Contains(strings.ToLower(p.Description), text) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}
