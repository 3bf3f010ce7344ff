package billing

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

// IsValid checks if the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusVoided:
		return true
	}
	return false
}

// String returns the string representation
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanIssue returns true if the invoice can be issued from this status
func (s InvoiceStatus) CanIssue() bool {
	return s == InvoiceStatusDraft
}

// CanVoid returns true if the invoice can be voided from this status
func (s InvoiceStatus) CanVoid() bool {
	return s == InvoiceStatusIssued
}

// CAEValidityDays is how long a simulated CAE stays valid after issue
const CAEValidityDays = 10

// InvoiceLine is one billed concept on an invoice
type InvoiceLine struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Total returns quantity times unit price
func (l InvoiceLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Invoice is a customer invoice. It stays editable as a draft; issuing
// assigns the invoice number and a simulated electronic authorization
// code (CAE) with its due date.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	CustomerName  string
	CustomerTaxID string
	IssueDate     *time.Time
	Lines         []InvoiceLine
	TaxRate       decimal.Decimal
	Status        InvoiceStatus
	CAE           string
	CAEDueDate    *time.Time
}

// NewInvoice creates a draft invoice
func NewInvoice(customerName, customerTaxID string, taxRate decimal.Decimal) (*Invoice, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerTaxID:     strings.TrimSpace(customerTaxID),
		TaxRate:           taxRate,
		Status:            InvoiceStatusDraft,
		Lines:             make([]InvoiceLine, 0),
	}, nil
}

// AddLine appends a billed concept to a draft invoice
func (i *Invoice) AddLine(description string, quantity int, unitPrice decimal.Decimal) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft invoices")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	i.Lines = append(i.Lines, InvoiceLine{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	i.Touch()
	return nil
}

// RemoveLine deletes a line from a draft invoice
func (i *Invoice) RemoveLine(lineID uuid.UUID) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be removed from draft invoices")
	}
	for idx, line := range i.Lines {
		if line.ID == lineID {
			i.Lines = append(i.Lines[:idx], i.Lines[idx+1:]...)
			i.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Subtotal sums all line totals
func (i *Invoice) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range i.Lines {
		subtotal = subtotal.Add(line.Total())
	}
	return subtotal
}

// TaxAmount returns the tax over the subtotal
func (i *Invoice) TaxAmount() decimal.Decimal {
	return i.Subtotal().Mul(i.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
}

// Total returns subtotal plus tax
func (i *Invoice) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxAmount())
}

// TotalMoney returns the invoice total as Money in the default currency
func (i *Invoice) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyARS(i.Total())
}

// Issue finalizes the invoice with its number and a simulated CAE.
// The CAE due date falls CAEValidityDays after issue.
func (i *Invoice) Issue(invoiceNumber string, issuedAt time.Time) error {
	if !i.Status.CanIssue() {
		return shared.NewDomainError("INVALID_STATE",
			"Invoice can only be issued from draft, current status: "+i.Status.String())
	}
	if len(i.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice needs at least one line to be issued")
	}
	if strings.TrimSpace(invoiceNumber) == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number is required")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	caeDue := issuedAt.AddDate(0, 0, CAEValidityDays)

	i.InvoiceNumber = invoiceNumber
	i.IssueDate = &issuedAt
	i.CAE = GenerateCAE()
	i.CAEDueDate = &caeDue
	i.Status = InvoiceStatusIssued
	i.Touch()
	i.AddDomainEvent(NewInvoiceIssuedEvent(i))
	return nil
}

// Void annuls an issued invoice
func (i *Invoice) Void() error {
	if !i.Status.CanVoid() {
		return shared.NewDomainError("INVALID_STATE",
			"Only issued invoices can be voided, current status: "+i.Status.String())
	}
	i.Status = InvoiceStatusVoided
	i.Touch()
	return nil
}

// GenerateCAE produces a simulated 14-digit electronic authorization
// code. Real codes come from the tax agency; this system never talks to
// it and only mimics the shape.
func GenerateCAE() string {
	const digits = "0123456789"
	code := make([]byte, 14)
	for idx := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a fixed digit rather than panic.
			code[idx] = '0'
			continue
		}
		code[idx] = digits[n.Int64()]
	}
	// Leading digit stays non-zero so the code always prints 14 wide.
	if code[0] == '0' {
		code[0] = '3'
	}
	return string(code)
}
