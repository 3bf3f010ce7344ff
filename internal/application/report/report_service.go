// Package report assembles the monthly financial results sheet.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/salon/backend/internal/domain/arreglo"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/salon/backend/internal/domain/report"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// summaryCacheTTL keeps a computed month around briefly. Closed months
// rarely change, the current month changes all day.
const summaryCacheTTL = 5 * time.Minute

// Service computes financial summaries across the other modules
type Service struct {
	invoiceRepo    billing.Repository
	cardRepo       giftcard.Repository
	arregloRepo    arreglo.Repository
	expenseRepo    expense.Repository
	payrollRepo    payroll.Repository
	insuredMinimum decimal.Decimal
	cache          cache.ReportCache
	logger         *zap.Logger
}

// NewService creates a report service
func NewService(
	invoiceRepo billing.Repository,
	cardRepo giftcard.Repository,
	arregloRepo arreglo.Repository,
	expenseRepo expense.Repository,
	payrollRepo payroll.Repository,
	insuredMinimum decimal.Decimal,
	reportCache cache.ReportCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		invoiceRepo:    invoiceRepo,
		cardRepo:       cardRepo,
		arregloRepo:    arregloRepo,
		expenseRepo:    expenseRepo,
		payrollRepo:    payrollRepo,
		insuredMinimum: insuredMinimum,
		cache:          reportCache,
		logger:         logger,
	}
}

// FinancialSummary builds the monthly results sheet: revenue by source,
// expenses by category with month-over-month movement, payroll cost and
// the net result.
func (s *Service) FinancialSummary(ctx context.Context, year, month int) (*report.FinancialSummary, error) {
	period := report.Period{Year: year, Month: month}
	if !period.Valid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is out of range")
	}

	cacheKey := fmt.Sprintf("summary:%s", period)
	var cached report.FinancialSummary
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	revenue, err := s.revenueFor(ctx, period)
	if err != nil {
		return nil, err
	}
	expenseTotal, shares, err := s.expensesFor(ctx, period)
	if err != nil {
		return nil, err
	}
	payrollCost, err := s.payrollCostFor(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := &report.FinancialSummary{
		Period:       period.String(),
		Revenue:      revenue,
		ExpenseTotal: expenseTotal,
		Expenses:     shares,
		PayrollCost:  payrollCost,
		NetResult:    revenue.Total.Sub(expenseTotal).Sub(payrollCost),
		GeneratedAt:  time.Now(),
	}

	// Month-over-month movement; a prior month with no activity at all
	// yields no comparison rather than one against zero.
	prev := period.Previous()
	prevRevenue, err := s.revenueFor(ctx, prev)
	if err != nil {
		return nil, err
	}
	prevExpenses, err := s.expenseRepo.SumBetween(ctx, prev.Start(), prev.End())
	if err != nil {
		return nil, err
	}
	prevPayroll, err := s.payrollCostFor(ctx, prev)
	if err != nil {
		return nil, err
	}
	if !prevRevenue.Total.IsZero() || !prevExpenses.IsZero() || !prevPayroll.IsZero() {
		prevNet := prevRevenue.Total.Sub(prevExpenses).Sub(prevPayroll)
		change := summary.NetResult.Sub(prevNet)
		summary.PrevNetResult = &prevNet
		summary.NetChange = &change
	}

	if err := s.cache.Set(ctx, cacheKey, summary, summaryCacheTTL); err != nil {
		s.logger.Warn("failed to cache financial summary", zap.Error(err))
	}
	return summary, nil
}

func (s *Service) revenueFor(ctx context.Context, period report.Period) (report.RevenueBreakdown, error) {
	from, to := period.Start(), period.End()

	invoiced, err := s.invoiceRepo.SumIssuedBetween(ctx, from, to)
	if err != nil {
		return report.RevenueBreakdown{}, err
	}
	giftCards, err := s.cardRepo.SumRedeemedBetween(ctx, from, to)
	if err != nil {
		return report.RevenueBreakdown{}, err
	}
	arreglos, err := s.arregloRepo.SumCompletedBetween(ctx, from, to)
	if err != nil {
		return report.RevenueBreakdown{}, err
	}

	return report.RevenueBreakdown{
		Invoiced:  invoiced,
		GiftCards: giftCards,
		Arreglos:  arreglos,
		Total:     invoiced.Add(giftCards).Add(arreglos),
	}, nil
}

func (s *Service) expensesFor(ctx context.Context, period report.Period) (decimal.Decimal, []report.CategoryShare, error) {
	current, err := s.expenseRepo.SumByCategoryBetween(ctx, period.Start(), period.End())
	if err != nil {
		return decimal.Zero, nil, err
	}
	prev := period.Previous()
	previous, err := s.expenseRepo.SumByCategoryBetween(ctx, prev.Start(), prev.End())
	if err != nil {
		return decimal.Zero, nil, err
	}

	prevByCategory := make(map[expense.Category]decimal.Decimal, len(previous))
	for _, row := range previous {
		prevByCategory[row.Category] = row.Total
	}

	total := decimal.Zero
	for _, row := range current {
		total = total.Add(row.Total)
	}

	shares := make([]report.CategoryShare, 0, len(current))
	for _, row := range current {
		share := report.CategoryShare{
			Category: row.Category.String(),
			Total:    row.Total,
		}
		if total.IsPositive() {
			share.PercentOfTotal = row.Total.Div(total).Mul(hundred).Round(2)
		}
		if prevAmount, ok := prevByCategory[row.Category]; ok && prevAmount.IsPositive() {
			change := row.Total.Sub(prevAmount).Div(prevAmount).Mul(hundred).Round(2)
			share.PercentChange = &change
		} else {
			share.NoPriorData = true
		}
		shares = append(shares, share)
	}
	return total, shares, nil
}

// payrollCostFor is the sum of the global-sheet cash payouts plus the
// insured top-ups of the period.
func (s *Service) payrollCostFor(ctx context.Context, period report.Period) (decimal.Decimal, error) {
	filter := payroll.SalaryRecordFilter{
		Filter:      shared.Filter{Page: 1, PageSize: 200},
		PeriodYear:  &period.Year,
		PeriodMonth: &period.Month,
	}
	records, err := s.payrollRepo.FindAll(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	cost := decimal.Zero
	for i := range records {
		breakdown := records[i].ComputeSalaryGlobal(s.insuredMinimum)
		cost = cost.Add(breakdown.CashTotal).Add(breakdown.InsuredTopUp)
	}
	return cost, nil
}
