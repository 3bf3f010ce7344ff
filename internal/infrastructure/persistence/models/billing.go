package models

import (
	"encoding/json"
	"time"

	"github.com/salon/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
// Lines are stored as a JSON document; the salon's invoices rarely carry
// more than a handful of lines and are never queried line by line.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string          `gorm:"type:varchar(30);uniqueIndex:idx_invoice_number,where:invoice_number <> ''"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	CustomerTaxID string          `gorm:"type:varchar(30)"`
	IssueDate     *time.Time      `gorm:"index"`
	Lines         string          `gorm:"type:jsonb;not null;default:'[]'"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'draft';index"`
	CAE           string          `gorm:"type:varchar(14)"`
	CAEDueDate    *time.Time      `gorm:""`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		CustomerName:  m.CustomerName,
		CustomerTaxID: m.CustomerTaxID,
		IssueDate:     m.IssueDate,
		TaxRate:       m.TaxRate,
		Status:        billing.InvoiceStatus(m.Status),
		CAE:           m.CAE,
		CAEDueDate:    m.CAEDueDate,
	}
	m.PopulateAggregateRoot(&invoice.BaseAggregateRoot)

	var lines []billing.InvoiceLine
	if m.Lines != "" {
		if err := json.Unmarshal([]byte(m.Lines), &lines); err != nil {
			lines = nil
		}
	}
	if lines == nil {
		lines = make([]billing.InvoiceLine, 0)
	}
	invoice.Lines = lines
	return invoice
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.InvoiceNumber = i.InvoiceNumber
	m.CustomerName = i.CustomerName
	m.CustomerTaxID = i.CustomerTaxID
	m.IssueDate = i.IssueDate
	m.TaxRate = i.TaxRate
	m.Status = i.Status.String()
	m.CAE = i.CAE
	m.CAEDueDate = i.CAEDueDate

	lines := i.Lines
	if lines == nil {
		lines = make([]billing.InvoiceLine, 0)
	}
	data, err := json.Marshal(lines)
	if err != nil {
		data = []byte("[]")
	}
	m.Lines = string(data)
}

// InvoiceModelFromDomain creates a new persistence model from a domain entity.
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(i)
	return m
}
