package billing

import (
	"github.com/salon/backend/internal/domain/shared"
)

const (
	EventInvoiceIssued = "billing.invoice_issued"
)

// InvoiceIssuedEvent is raised when a draft invoice is issued
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	Total         string `json:"total"`
}

// NewInvoiceIssuedEvent creates an issued event for an invoice
func NewInvoiceIssuedEvent(invoice *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceIssued, "Invoice", invoice.ID),
		InvoiceNumber:   invoice.InvoiceNumber,
		Total:           invoice.Total().StringFixed(2),
	}
}
