// Package seed loads the product catalog from YAML. The default catalog is
// embedded in the binary.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var defaultCatalog []byte

// Default returns the embedded catalog.
func Default() ([]domain.Product, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, or the embedded catalog when path is empty.
func Load(path string) ([]domain.Product, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML product list, keeping file order, and rejects
// invalid or duplicate records.
func Parse(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return products, nil
}
