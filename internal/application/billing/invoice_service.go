// Package billing contains the application services for customer
// invoices and their simulated electronic authorization.
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles invoice operations
type Service struct {
	invoiceRepo billing.Repository
	bus         event.Bus
	taxRate     decimal.Decimal
	logger      *zap.Logger
}

// NewService creates a billing service. taxRate is the VAT percentage
// applied to new invoices.
func NewService(invoiceRepo billing.Repository, bus event.Bus, taxRate decimal.Decimal, logger *zap.Logger) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		bus:         bus,
		taxRate:     taxRate,
		logger:      logger,
	}
}

// Create opens a draft invoice, optionally with initial lines
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := billing.NewInvoice(req.CustomerName, req.CustomerTaxID, s.taxRate)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if err := invoice.AddLine(line.Description, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// Get returns one invoice
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// AddLine appends a billed concept to a draft invoice
func (s *Service) AddLine(ctx context.Context, id uuid.UUID, req AddLineRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.AddLine(req.Description, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// RemoveLine deletes a line from a draft invoice
func (s *Service) RemoveLine(ctx context.Context, id, lineID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.RemoveLine(lineID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// issueAttempts bounds the retries when a concurrent issue claims the
// same invoice number first.
const issueAttempts = 3

// Issue finalizes a draft: it takes the next number in the period's
// sequence and stamps a simulated CAE with its due date. When two
// issues race to the same number the unique index rejects one; that
// one refetches the draft and tries the next number.
func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	for attempt := 1; ; attempt++ {
		var err error
		invoice, err = s.invoiceRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		invoiceNumber, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, now.Format("200601"))
		if err != nil {
			return nil, err
		}
		if err := invoice.Issue(invoiceNumber, now); err != nil {
			return nil, err
		}

		err = s.invoiceRepo.SaveWithLock(ctx, invoice)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt >= issueAttempts {
			return nil, err
		}
		s.logger.Warn("invoice number already taken, retrying",
			zap.String("invoice_number", invoiceNumber),
			zap.Int("attempt", attempt),
		)
	}

	events := invoice.GetDomainEvents()
	if len(events) > 0 {
		if err := s.bus.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish invoice events", zap.Error(err))
		}
		invoice.ClearDomainEvents()
	}

	s.logger.Info("invoice issued",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.Total().StringFixed(2)),
	)

	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// Void annuls an issued invoice
func (s *Service) Void(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes a draft invoice. Issued invoices are voided, never
// deleted, so the numbering sequence keeps its trail.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != billing.InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// List returns invoices matching the filter
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceResponse, int64, error) {
	filter := billing.InvoiceFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
	}
	if req.Status != "" {
		status := billing.InvoiceStatus(req.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATE", "Unknown invoice status")
		}
		filter.Status = &status
	}
	if req.IssuedFrom != "" {
		from, err := time.Parse("2006-01-02", req.IssuedFrom)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "issued_from must be YYYY-MM-DD")
		}
		filter.IssuedFrom = &from
	}
	if req.IssuedTo != "" {
		to, err := time.Parse("2006-01-02", req.IssuedTo)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "issued_to must be YYYY-MM-DD")
		}
		filter.IssuedTo = &to
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = toInvoiceResponse(&invoices[i])
	}
	return responses, total, nil
}
