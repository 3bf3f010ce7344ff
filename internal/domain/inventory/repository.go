package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
)

// StockItemFilter describes query options for listing stock items
type StockItemFilter struct {
	shared.Filter
	Category *string
	LowStock bool
}

// Repository defines persistence for stock items
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindAll(ctx context.Context, filter StockItemFilter) ([]StockItem, error)
	Count(ctx context.Context, filter StockItemFilter) (int64, error)
	Save(ctx context.Context, item *StockItem) error
	SaveWithLock(ctx context.Context, item *StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
