package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a calendar month used for financial reporting
type Period struct {
	Year  int
	Month int
}

// Valid checks the period is a real calendar month
func (p Period) Valid() bool {
	return p.Year >= 2000 && p.Year <= 2100 && p.Month >= 1 && p.Month <= 12
}

// Start returns the first instant of the period
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the next period
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Previous returns the preceding calendar month
func (p Period) Previous() Period {
	prev := p.Start().AddDate(0, -1, 0)
	return Period{Year: prev.Year(), Month: int(prev.Month())}
}

// String formats the period as YYYY-MM
func (p Period) String() string {
	return p.Start().Format("2006-01")
}

// RevenueBreakdown splits period revenue by source
type RevenueBreakdown struct {
	Invoiced      decimal.Decimal `json:"invoiced"`
	GiftCards     decimal.Decimal `json:"gift_cards"`
	Arreglos      decimal.Decimal `json:"arreglos"`
	Total         decimal.Decimal `json:"total"`
}

// CategoryShare is one expense category's slice of the period
type CategoryShare struct {
	Category       string           `json:"category"`
	Total          decimal.Decimal  `json:"total"`
	PercentOfTotal decimal.Decimal  `json:"percent_of_total"`
	// PercentChange compares against the prior period. It is nil when
	// the prior period has nothing in this category, flagged by
	// NoPriorData instead of a fabricated number.
	PercentChange *decimal.Decimal `json:"percent_change,omitempty"`
	NoPriorData   bool             `json:"no_prior_data"`
}

// FinancialSummary is the monthly results sheet
type FinancialSummary struct {
	Period        string           `json:"period"`
	Revenue       RevenueBreakdown `json:"revenue"`
	ExpenseTotal  decimal.Decimal  `json:"expense_total"`
	Expenses      []CategoryShare  `json:"expenses"`
	PayrollCost   decimal.Decimal  `json:"payroll_cost"`
	NetResult     decimal.Decimal  `json:"net_result"`
	// PrevNetResult and NetChange carry the month-over-month movement;
	// NetChange is nil when the prior month has no data.
	PrevNetResult *decimal.Decimal `json:"prev_net_result,omitempty"`
	NetChange     *decimal.Decimal `json:"net_change,omitempty"`
	GeneratedAt   time.Time        `json:"generated_at"`
}
