// Package expense contains the application services for expense records
// and their monthly category report.
package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/report"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// Service handles expense record operations
type Service struct {
	expenseRepo expense.Repository
	logger      *zap.Logger
}

// NewService creates an expense service
func NewService(expenseRepo expense.Repository, logger *zap.Logger) *Service {
	return &Service{expenseRepo: expenseRepo, logger: logger}
}

// Create records a new expense
func (s *Service) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	amount, err := valueobject.NewMoney(req.Amount, valueobject.ARS)
	if err != nil {
		return nil, err
	}
	record, err := expense.NewExpenseRecord(expense.Category(req.Category), req.Description,
		amount, req.ExpenseDate, expense.PaymentMethod(req.PaymentMethod), req.SupplierNote)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("category", record.Category.String()),
		zap.String("amount", record.Amount.StringFixed(2)),
	)

	resp := toExpenseResponse(record)
	return &resp, nil
}

// Get returns one expense record
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	record, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toExpenseResponse(record)
	return &resp, nil
}

// Update edits an expense record
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	record, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amount, err := valueobject.NewMoney(req.Amount, valueobject.ARS)
	if err != nil {
		return nil, err
	}
	if err := record.Update(expense.Category(req.Category), req.Description, amount,
		req.ExpenseDate, expense.PaymentMethod(req.PaymentMethod), req.SupplierNote); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := toExpenseResponse(record)
	return &resp, nil
}

// Delete removes an expense record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// List returns expenses matching the filter
func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]ExpenseResponse, int64, error) {
	filter := expense.ExpenseFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
	}
	if req.Category != "" {
		category := expense.Category(req.Category)
		if !category.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
		}
		filter.Category = &category
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "date_to must be YYYY-MM-DD")
		}
		filter.DateTo = &to
	}

	records, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(records))
	for i := range records {
		responses[i] = toExpenseResponse(&records[i])
	}
	return responses, total, nil
}

// CategoryReport aggregates one month's expenses per category: each
// category's total, its share of the month, and its movement against
// the prior month. A category with no prior-month spending reports
// NoPriorData instead of a percentage computed against zero.
func (s *Service) CategoryReport(ctx context.Context, year, month int) (*CategoryReportResponse, error) {
	period := report.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is out of range")
	}
	prev := period.Previous()

	current, err := s.expenseRepo.SumByCategoryBetween(ctx, period.Start(), period.End())
	if err != nil {
		return nil, err
	}
	previous, err := s.expenseRepo.SumByCategoryBetween(ctx, prev.Start(), prev.End())
	if err != nil {
		return nil, err
	}

	prevByCategory := make(map[expense.Category]decimal.Decimal, len(previous))
	prevTotal := decimal.Zero
	for _, row := range previous {
		prevByCategory[row.Category] = row.Total
		prevTotal = prevTotal.Add(row.Total)
	}

	total := decimal.Zero
	for _, row := range current {
		total = total.Add(row.Total)
	}

	resp := &CategoryReportResponse{
		Period:     period.String(),
		Total:      total,
		PrevTotal:  prevTotal,
		Categories: make([]CategoryReportRow, 0, len(current)),
	}
	for _, row := range current {
		out := CategoryReportRow{
			Category:      row.Category.String(),
			CategoryLabel: row.Category.DisplayName(),
			Total:         row.Total,
			Count:         row.Count,
		}
		if total.IsPositive() {
			out.PercentOfTotal = row.Total.Div(total).Mul(hundred).Round(2)
		}
		if prevAmount, ok := prevByCategory[row.Category]; ok && prevAmount.IsPositive() {
			change := row.Total.Sub(prevAmount).Div(prevAmount).Mul(hundred).Round(2)
			out.PercentChange = &change
		} else {
			out.NoPriorData = true
		}
		resp.Categories = append(resp.Categories, out)
	}
	return resp, nil
}
