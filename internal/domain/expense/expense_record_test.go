package expense

import (
	"testing"
	"time"

	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_IsValid(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.IsValid(), "category %s", c)
	}
	assert.False(t, Category("groceries").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestNewExpenseRecord(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	amount := valueobject.NewMoneyARSFromFloat(42000)

	record, err := NewExpenseRecord(CategoryRent, "June rent", amount, date, PaymentTransfer, "")
	require.NoError(t, err)
	assert.Equal(t, CategoryRent, record.Category)
	assert.Equal(t, date, record.ExpenseDate)

	tests := []struct {
		name     string
		category Category
		desc     string
		amount   valueobject.Money
		date     time.Time
		method   PaymentMethod
	}{
		{"bad category", Category("nope"), "x", amount, date, PaymentCash},
		{"empty description", CategoryRent, " ", amount, date, PaymentCash},
		{"zero amount", CategoryRent, "x", valueobject.ZeroARS(), date, PaymentCash},
		{"negative amount", CategoryRent, "x", valueobject.NewMoneyARSFromFloat(-5), date, PaymentCash},
		{"zero date", CategoryRent, "x", amount, time.Time{}, PaymentCash},
		{"bad payment method", CategoryRent, "x", amount, date, PaymentMethod("crypto")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewExpenseRecord(tc.category, tc.desc, tc.amount, tc.date, tc.method, "")
			assert.Error(t, err)
		})
	}
}

func TestExpenseRecord_Update(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	record, err := NewExpenseRecord(CategoryProducts, "Shampoo stock", valueobject.NewMoneyARSFromFloat(8000), date, PaymentCard, "Distribuidora Sur")
	require.NoError(t, err)

	newDate := date.AddDate(0, 0, 1)
	require.NoError(t, record.Update(CategoryMaintenance, "Dryer repair", valueobject.NewMoneyARSFromFloat(9500), newDate, PaymentCash, ""))
	assert.Equal(t, CategoryMaintenance, record.Category)
	assert.Equal(t, newDate, record.ExpenseDate)

	assert.Error(t, record.Update(Category("nope"), "x", valueobject.NewMoneyARSFromFloat(1), newDate, PaymentCash, ""))
}
