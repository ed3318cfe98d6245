package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_MarshalJSON(t *testing.T) {
	testCases := []struct {
		name          string
		price         string
		expectedPrice string
	}{
		{name: "Two decimals", price: "18.99", expectedPrice: `"unitPrice":18.99`},
		{name: "Whole amount", price: "20", expectedPrice: `"unitPrice":20.00`},
		{name: "Zero price", price: "0", expectedPrice: `"unitPrice":0.00`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			product := Product{ID: 7, SKU: "MUG-1", UnitPrice: decimal.RequireFromString(tc.price), CategoryID: 2}

			raw, err := json.Marshal(&product)

			require.NoError(t, err)
			assert.Contains(t, string(raw), tc.expectedPrice)
			assert.Contains(t, string(raw), `"id":7`)
			assert.Contains(t, string(raw), `"sku":"MUG-1"`)
			assert.Contains(t, string(raw), `"categoryId":2`)
		})
	}
}

func TestProduct_UnmarshalJSON(t *testing.T) {
	var product Product

	require.NoError(t, json.Unmarshal([]byte(`{"sku":"MUG-1","unitPrice":18.9,"categoryId":2}`), &product))

	assert.Equal(t, "MUG-1", product.SKU)
	assert.True(t, product.UnitPrice.Equal(decimal.RequireFromString("18.90")))
	assert.Equal(t, uint(2), product.CategoryID)
}

func TestProduct_MarshalJSONLeavesDecimalDefaults(t *testing.T) {
	_, err := json.Marshal(Product{UnitPrice: decimal.RequireFromString("1.50")})
	require.NoError(t, err)

	raw, err := json.Marshal(decimal.RequireFromString("1.50"))
	require.NoError(t, err)
	assert.Equal(t, `"1.5"`, string(raw))
}
