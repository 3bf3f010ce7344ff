package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseFilter describes query options for listing expenses
type ExpenseFilter struct {
	shared.Filter
	Category *Category
	DateFrom *time.Time
	DateTo   *time.Time
}

// CategoryTotal is a per-category aggregation row
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
	Count    int64
}

// Repository defines persistence for expense records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)
	FindAll(ctx context.Context, filter ExpenseFilter) ([]ExpenseRecord, error)
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	Save(ctx context.Context, record *ExpenseRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumByCategoryBetween(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
