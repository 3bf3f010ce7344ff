package inventory

import (
	"testing"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, qty, minQty int) *StockItem {
	t.Helper()
	item, err := NewStockItem("Shampoo 500ml", "hair", qty, "bottle", minQty,
		valueobject.NewMoneyARSFromFloat(3500))
	require.NoError(t, err)
	return item
}

func TestNewStockItem_Validation(t *testing.T) {
	cost := valueobject.NewMoneyARSFromFloat(10)

	_, err := NewStockItem(" ", "hair", 1, "unit", 0, cost)
	assert.Error(t, err)

	_, err = NewStockItem("x", "hair", -1, "unit", 0, cost)
	assert.Error(t, err)

	_, err = NewStockItem("x", "hair", 1, "unit", -1, cost)
	assert.Error(t, err)

	_, err = NewStockItem("x", "hair", 1, "unit", 0, valueobject.NewMoneyARSFromFloat(-1))
	assert.Error(t, err)

	item, err := NewStockItem("x", "hair", 1, "", 0, cost)
	require.NoError(t, err)
	assert.Equal(t, "unit", item.Unit)
}

func TestRestockAndConsume(t *testing.T) {
	item := newTestItem(t, 10, 2)

	require.NoError(t, item.Restock(5))
	assert.Equal(t, 15, item.Quantity)

	require.NoError(t, item.Consume(12))
	assert.Equal(t, 3, item.Quantity)

	err := item.Consume(4)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 3, item.Quantity, "failed consume must not change quantity")

	assert.Error(t, item.Restock(0))
	assert.Error(t, item.Consume(-1))
}

func TestIsLowStock(t *testing.T) {
	item := newTestItem(t, 3, 2)
	assert.False(t, item.IsLowStock())

	require.NoError(t, item.Consume(1))
	assert.True(t, item.IsLowStock(), "at threshold counts as low")

	require.NoError(t, item.Consume(2))
	assert.True(t, item.IsLowStock())
}
