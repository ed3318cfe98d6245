package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCategories(t *testing.T) {
	categories := SampleCategories()
	require.Len(t, categories, 4)

	skus := map[string]bool{}
	products := 0
	for _, c := range categories {
		assert.NotEmpty(t, c.CategoryName)
		for _, p := range c.Products {
			products++
			assert.False(t, skus[p.SKU], "duplicate sku %s", p.SKU)
			skus[p.SKU] = true
			assert.True(t, p.UnitPrice.IsPositive(), p.SKU)
			assert.Zero(t, p.CategoryID, "category is assigned on insert")
		}
	}
	assert.Equal(t, 6, products)
	assert.Empty(t, categories[3].Products)
}

func TestMigrationFiles(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"migrations/000001_create_catalog.up.sql",
		"migrations/000001_create_catalog.down.sql",
	}, names)
}

func TestMigrationFiles_ProductsCascadeWithCategory(t *testing.T) {
	raw, err := fs.ReadFile(migrationFiles, "migrations/000001_create_catalog.up.sql")
	require.NoError(t, err)

	sql := strings.Join(strings.Fields(string(raw)), " ")
	assert.Contains(t, sql, "category_id BIGINT NOT NULL REFERENCES product_category (id) ON DELETE CASCADE")
}
