package models

import (
	"time"

	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseRecordModel is the persistence model for the ExpenseRecord domain entity.
type ExpenseRecordModel struct {
	AggregateModel
	Category      string          `gorm:"type:varchar(30);not null;index"`
	Description   string          `gorm:"type:varchar(500);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'ARS'"`
	ExpenseDate   time.Time       `gorm:"not null;index"`
	PaymentMethod string          `gorm:"type:varchar(20)"`
	SupplierNote  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExpenseRecordModel) TableName() string {
	return "expense_records"
}

// ToDomain converts the persistence model to a domain ExpenseRecord entity.
func (m *ExpenseRecordModel) ToDomain() *expense.ExpenseRecord {
	amount, err := valueobject.NewMoney(m.Amount, valueobject.Currency(m.Currency))
	if err != nil {
		amount = valueobject.NewMoneyARS(m.Amount)
	}
	record := &expense.ExpenseRecord{
		Category:      expense.Category(m.Category),
		Description:   m.Description,
		Amount:        amount,
		ExpenseDate:   m.ExpenseDate,
		PaymentMethod: expense.PaymentMethod(m.PaymentMethod),
		SupplierNote:  m.SupplierNote,
	}
	m.PopulateAggregateRoot(&record.BaseAggregateRoot)
	return record
}

// FromDomain populates the persistence model from a domain ExpenseRecord entity.
func (m *ExpenseRecordModel) FromDomain(e *expense.ExpenseRecord) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Category = e.Category.String()
	m.Description = e.Description
	m.Amount = e.Amount.Amount()
	m.Currency = string(e.Amount.Currency())
	m.ExpenseDate = e.ExpenseDate
	m.PaymentMethod = string(e.PaymentMethod)
	m.SupplierNote = e.SupplierNote
}

// ExpenseRecordModelFromDomain creates a new persistence model from a domain entity.
func ExpenseRecordModelFromDomain(e *expense.ExpenseRecord) *ExpenseRecordModel {
	m := &ExpenseRecordModel{}
	m.FromDomain(e)
	return m
}
