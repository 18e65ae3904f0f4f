package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"github.com/lib/pq"
)

const productColumns = `id, name, description, price, original_price, category, subcategory, brand,
	image_url, images, rating, review_count, in_stock, stock_count, specifications, tags, discount`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Migrate creates the products table. seq keeps catalog insertion order.
func (r *ProductRepo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			seq BIGSERIAL UNIQUE,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
			original_price DOUBLE PRECISION,
			category TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			images TEXT[] NOT NULL DEFAULT '{}',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			in_stock BOOLEAN NOT NULL DEFAULT FALSE,
			stock_count INT NOT NULL DEFAULT 0,
			specifications JSONB NOT NULL DEFAULT '{}',
			tags TEXT[] NOT NULL DEFAULT '{}',
			discount INT
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate products: %w", err)
	}
	return nil
}

// Seed inserts products if the table is empty.
func (r *ProductRepo) Seed(ctx context.Context, products []domain.Product) error {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		specs, err := json.Marshal(p.Specifications)
		if err != nil {
			return fmt.Errorf("failed to marshal specifications for %s: %w", p.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.Subcategory, p.Brand,
			p.ImageURL, textArray(p.Images), p.Rating, p.ReviewCount, p.InStock, p.StockCount,
			string(specs), textArray(p.Tags), p.Discount,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// textArray encodes a nil slice as an empty array; pq.Array would send NULL
// into a NOT NULL column.
func textArray(v []string) pq.StringArray {
	if v == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(v)
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p             domain.Product
		originalPrice sql.NullFloat64
		discount      sql.NullInt64
		specs         []byte
	)
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &originalPrice, &p.Category, &p.Subcategory, &p.Brand,
		&p.ImageURL, pq.Array(&p.Images), &p.Rating, &p.ReviewCount, &p.InStock, &p.StockCount,
		&specs, pq.Array(&p.Tags), &discount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}

	if originalPrice.Valid {
		v := originalPrice.Float64
		p.OriginalPrice = &v
	}
	if discount.Valid {
		v := int(discount.Int64)
		p.Discount = &v
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return domain.Product{}, fmt.Errorf("failed to decode specifications for %s: %w", p.ID, err)
		}
	}
	return p, nil
}
