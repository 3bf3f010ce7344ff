package inventory

import (
	"strings"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// StockItem is a consumable or retail product tracked by the salon
type StockItem struct {
	shared.BaseAggregateRoot
	Name        string
	Category    string
	Quantity    int
	Unit        string
	MinQuantity int
	UnitCost    valueobject.Money
}

// NewStockItem creates a stock item
func NewStockItem(name, category string, quantity int, unit string, minQuantity int, unitCost valueobject.Money) (*StockItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name is required")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if minQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if strings.TrimSpace(unit) == "" {
		unit = "unit"
	}
	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Quantity:          quantity,
		Unit:              unit,
		MinQuantity:       minQuantity,
		UnitCost:          unitCost,
	}, nil
}

// Restock adds quantity to the item
func (s *StockItem) Restock(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}
	s.Quantity += qty
	s.Touch()
	return nil
}

// Consume removes quantity from the item. Stock never goes negative.
func (s *StockItem) Consume(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Consume quantity must be positive")
	}
	if qty > s.Quantity {
		return shared.ErrInsufficientStock
	}
	s.Quantity -= qty
	s.Touch()
	return nil
}

// IsLowStock reports whether the item is at or below its minimum
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.MinQuantity
}

// Update replaces the item's editable details. Quantity changes go
// through Restock and Consume so movements stay auditable.
func (s *StockItem) Update(name, category, unit string, minQuantity int, unitCost valueobject.Money) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name is required")
	}
	if minQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	s.Name = name
	s.Category = category
	if strings.TrimSpace(unit) != "" {
		s.Unit = unit
	}
	s.MinQuantity = minQuantity
	s.UnitCost = unitCost
	s.Touch()
	return nil
}
