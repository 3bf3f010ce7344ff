package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter describes query options for listing invoices
type InvoiceFilter struct {
	shared.Filter
	Status     *InvoiceStatus
	IssuedFrom *time.Time
	IssuedTo   *time.Time
}

// Repository defines persistence for invoices
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// GenerateInvoiceNumber returns the next number in the
	// INV-YYYYMM-NNNNN sequence for the given period.
	GenerateInvoiceNumber(ctx context.Context, yearMonth string) (string, error)
	SumIssuedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
