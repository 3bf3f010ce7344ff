package inventory

import (
	"time"

	"github.com/salon/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateStockItemRequest is the input for adding a stock item
type CreateStockItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	Unit        string          `json:"unit"`
	MinQuantity int             `json:"min_quantity" binding:"min=0"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// UpdateStockItemRequest is the input for editing a stock item.
// Quantity is absent on purpose; movements go through restock/consume.
type UpdateStockItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	MinQuantity int             `json:"min_quantity" binding:"min=0"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// MovementRequest is the input for a restock or consume movement
type MovementRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ListStockItemsRequest is the input for listing stock items
type ListStockItemsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
}

// StockItemResponse is the API shape of a stock item
type StockItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	MinQuantity int             `json:"min_quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Currency    string          `json:"currency"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Category:    item.Category,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		MinQuantity: item.MinQuantity,
		UnitCost:    item.UnitCost.Amount(),
		Currency:    string(item.UnitCost.Currency()),
		LowStock:    item.IsLowStock(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
