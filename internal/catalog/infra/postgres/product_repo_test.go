package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/seed"
	pg "github.com/dwikikusuma/shoping-assistant/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a throwaway database named by TEST_DATABASE_URL.
func TestProductRepoPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := pg.Open(pg.Config{URL: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS products")
	require.NoError(t, err)

	repo := postgres.NewProductRepo(db)
	require.NoError(t, repo.Migrate(ctx))

	products, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, repo.Seed(ctx, products))
	require.NoError(t, repo.Seed(ctx, products), "seeding twice is a no-op")

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got)

	p, err := repo.Get(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, products[3], p)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)

	t.Run("bare record seeds", func(t *testing.T) {
		_, err := db.ExecContext(ctx, "TRUNCATE products")
		require.NoError(t, err)

		bare, err := seed.Parse([]byte("- id: x\n  name: Bare\n  price: 1\n  inStock: true\n  stockCount: 1\n"))
		require.NoError(t, err)
		require.NoError(t, repo.Seed(ctx, bare))

		p, err := repo.Get(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, "Bare", p.Name)
		assert.Empty(t, p.Images)
		assert.Empty(t, p.Tags)
	})
}
