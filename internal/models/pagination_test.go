package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	t.Run("Empty result", func(t *testing.T) {
		page := NewPage[Sale](nil, 0, 1, 10)
		assert.NotNil(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasMore)
	})

	t.Run("Partial last page", func(t *testing.T) {
		page := NewPage([]int{1, 2, 3}, 23, 2, 10)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasMore)
	})

	t.Run("Last page", func(t *testing.T) {
		page := NewPage([]int{1, 2, 3}, 23, 3, 10)
		assert.False(t, page.HasMore)
	})
}

func TestNormalizePage(t *testing.T) {
	page, perPage := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	page, perPage = NormalizePage(4, 500)
	assert.Equal(t, 4, page)
	assert.Equal(t, MaxPerPage, perPage)

	assert.Equal(t, 30, Offset(4, 10))
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	item := SaleItem{Quantity: 2, UnitPrice: decimal.RequireFromString("10.50"), Subtotal: LineSubtotal(decimal.RequireFromString("10.50"), 2)}

	raw, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"unitPrice":10.5`)
	assert.Contains(t, string(raw), `"subtotal":21`)
}
