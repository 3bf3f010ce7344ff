package models

import (
	"github.com/salon/backend/internal/domain/inventory"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StockItemModel is the persistence model for the StockItem domain entity.
type StockItemModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_stock_item_name"`
	Category     string          `gorm:"type:varchar(100);index"`
	Quantity     int             `gorm:"not null;default:0"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'unit'"`
	MinQuantity  int             `gorm:"not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostCurrency string          `gorm:"type:varchar(3);not null;default:'ARS'"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem entity.
func (m *StockItemModel) ToDomain() *inventory.StockItem {
	cost, err := valueobject.NewMoney(m.UnitCost, valueobject.Currency(m.CostCurrency))
	if err != nil {
		cost = valueobject.NewMoneyARS(m.UnitCost)
	}
	item := &inventory.StockItem{
		Name:        m.Name,
		Category:    m.Category,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		MinQuantity: m.MinQuantity,
		UnitCost:    cost,
	}
	m.PopulateAggregateRoot(&item.BaseAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain StockItem entity.
func (m *StockItemModel) FromDomain(s *inventory.StockItem) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Category = s.Category
	m.Quantity = s.Quantity
	m.Unit = s.Unit
	m.MinQuantity = s.MinQuantity
	m.UnitCost = s.UnitCost.Amount()
	m.CostCurrency = string(s.UnitCost.Currency())
}

// StockItemModelFromDomain creates a new persistence model from a domain entity.
func StockItemModelFromDomain(s *inventory.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(s)
	return m
}
