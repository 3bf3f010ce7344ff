// Package export generates the downloadable documents: salary receipts
// and invoices as PDF, gift card / expense / payroll workbooks as xlsx,
// and the monthly ZIP bundle.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/salon/backend/internal/domain/report"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/excelexport"
	"github.com/salon/backend/internal/infrastructure/pdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Payout variants for the salary receipt
const (
	VariantSingle = "single"
	VariantGlobal = "global"
)

// exportPageSize caps how many rows a workbook pulls in one query. The
// salon's data is small; this is far above any real month.
const exportPageSize = 500

// Service builds export files from the other modules' data
type Service struct {
	recordRepo     payroll.Repository
	invoiceRepo    billing.Repository
	cardRepo       giftcard.Repository
	expenseRepo    expense.Repository
	insuredMinimum decimal.Decimal
	logger         *zap.Logger
}

// NewService creates an export service
func NewService(
	recordRepo payroll.Repository,
	invoiceRepo billing.Repository,
	cardRepo giftcard.Repository,
	expenseRepo expense.Repository,
	insuredMinimum decimal.Decimal,
	logger *zap.Logger,
) *Service {
	return &Service{
		recordRepo:     recordRepo,
		invoiceRepo:    invoiceRepo,
		cardRepo:       cardRepo,
		expenseRepo:    expenseRepo,
		insuredMinimum: insuredMinimum,
		logger:         logger,
	}
}

// SalaryReceipt renders one employee's payout sheet as a PDF, using the
// requested payout variant.
func (s *Service) SalaryReceipt(ctx context.Context, recordID uuid.UUID, variant string) (*File, error) {
	record, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	var breakdown payroll.Breakdown
	switch variant {
	case VariantGlobal:
		breakdown = record.ComputeSalaryGlobal(s.insuredMinimum)
	case VariantSingle, "":
		breakdown = record.ComputeSalarySingle()
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payout variant")
	}

	data, err := pdf.SalaryReceipt(record, breakdown)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("recibo_%s_%04d-%02d.pdf", record.EmployeeID, record.PeriodYear, record.PeriodMonth)
	return &File{Name: name, ContentType: contentTypePDF, Data: data}, nil
}

// InvoicePDF renders an invoice as a PDF. Drafts render without number
// and CAE.
func (s *Service) InvoicePDF(ctx context.Context, invoiceID uuid.UUID) (*File, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	data, err := pdf.Invoice(invoice)
	if err != nil {
		return nil, err
	}
	name := "factura_borrador.pdf"
	if invoice.InvoiceNumber != "" {
		name = fmt.Sprintf("factura_%s.pdf", invoice.InvoiceNumber)
	}
	return &File{Name: name, ContentType: contentTypePDF, Data: data}, nil
}

// GiftCardsWorkbook writes every gift card to a workbook. The columns
// match the import sheet, so the download re-imports cleanly.
func (s *Service) GiftCardsWorkbook(ctx context.Context) (*File, error) {
	now := time.Now()
	cards, err := s.cardRepo.FindAll(ctx, giftcard.GiftCardFilter{
		Filter: shared.Filter{Page: 1, PageSize: exportPageSize, OrderBy: "purchase_date", OrderDir: "asc"},
		Now:    now,
	})
	if err != nil {
		return nil, err
	}
	data, err := excelexport.GiftCards(cards, now)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("giftcards_%s.xlsx", now.Format("2006-01-02"))
	return &File{Name: name, ContentType: contentTypeXLSX, Data: data}, nil
}

// ExpensesWorkbook writes one month of expenses to a workbook
func (s *Service) ExpensesWorkbook(ctx context.Context, year, month int) (*File, error) {
	period := report.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is out of range")
	}
	data, err := s.expensesWorkbook(ctx, period)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        fmt.Sprintf("gastos_%s.xlsx", period),
		ContentType: contentTypeXLSX,
		Data:        data,
	}, nil
}

// PayrollWorkbook writes the whole-salon payroll sheet for one month,
// one row per employee with the global-variant figures.
func (s *Service) PayrollWorkbook(ctx context.Context, year, month int) (*File, error) {
	period := report.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is out of range")
	}
	data, err := s.payrollWorkbook(ctx, period)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        fmt.Sprintf("sueldos_%s.xlsx", period),
		ContentType: contentTypeXLSX,
		Data:        data,
	}, nil
}

// MonthlyBundle zips the month's payroll sheet, expense list and the
// gift cards sold that month into one download.
func (s *Service) MonthlyBundle(ctx context.Context, year, month int) (*File, error) {
	period := report.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is out of range")
	}

	payrollData, err := s.payrollWorkbook(ctx, period)
	if err != nil {
		return nil, err
	}
	expenseData, err := s.expensesWorkbook(ctx, period)
	if err != nil {
		return nil, err
	}
	cardData, err := s.giftCardsWorkbook(ctx, period)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data []byte
	}{
		{fmt.Sprintf("sueldos_%s.xlsx", period), payrollData},
		{fmt.Sprintf("gastos_%s.xlsx", period), expenseData},
		{fmt.Sprintf("giftcards_%s.xlsx", period), cardData},
	}
	for _, entry := range entries {
		w, err := archive.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to bundle: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return nil, fmt.Errorf("failed to write %s into bundle: %w", entry.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish bundle: %w", err)
	}

	s.logger.Info("monthly bundle generated",
		zap.String("period", period.String()),
		zap.Int("size_bytes", buf.Len()),
	)
	return &File{
		Name:        fmt.Sprintf("cierre_%s.zip", period),
		ContentType: contentTypeZIP,
		Data:        buf.Bytes(),
	}, nil
}

func (s *Service) payrollWorkbook(ctx context.Context, period report.Period) ([]byte, error) {
	records, err := s.recordRepo.FindAll(ctx, payroll.SalaryRecordFilter{
		Filter:      shared.Filter{Page: 1, PageSize: exportPageSize, OrderBy: "employee_name", OrderDir: "asc"},
		PeriodYear:  &period.Year,
		PeriodMonth: &period.Month,
	})
	if err != nil {
		return nil, err
	}
	breakdowns := make([]payroll.Breakdown, len(records))
	for i := range records {
		breakdowns[i] = records[i].ComputeSalaryGlobal(s.insuredMinimum)
	}
	return excelexport.PayrollSheet(records, breakdowns)
}

func (s *Service) expensesWorkbook(ctx context.Context, period report.Period) ([]byte, error) {
	from, to := period.Start(), period.End()
	records, err := s.expenseRepo.FindAll(ctx, expense.ExpenseFilter{
		Filter:   shared.Filter{Page: 1, PageSize: exportPageSize, OrderBy: "expense_date", OrderDir: "asc"},
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, err
	}
	return excelexport.Expenses(records)
}

func (s *Service) giftCardsWorkbook(ctx context.Context, period report.Period) ([]byte, error) {
	now := time.Now()
	from, to := period.Start(), period.End()
	cards, err := s.cardRepo.FindAll(ctx, giftcard.GiftCardFilter{
		Filter:        shared.Filter{Page: 1, PageSize: exportPageSize, OrderBy: "purchase_date", OrderDir: "asc"},
		PurchasedFrom: &from,
		PurchasedTo:   &to,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}
	return excelexport.GiftCards(cards, now)
}
