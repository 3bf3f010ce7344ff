package payroll

import (
	"strings"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Commission rates by role. Manicurists earn a higher cut than the
// default rate applied to every other role.
var (
	manicuristCommissionRate = decimal.NewFromFloat(0.32)
	defaultCommissionRate    = decimal.NewFromFloat(0.30)
)

// CommissionRate returns the commission rate for a role. Any role whose
// name contains "manicur" (case-insensitive, so "Manicura", "manicurista"
// and "MANICURA SENIOR" all match) gets the manicurist rate.
func CommissionRate(role string) decimal.Decimal {
	if strings.Contains(strings.ToLower(role), "manicur") {
		return manicuristCommissionRate
	}
	return defaultCommissionRate
}

// ExtraItem is a free-form extra payment line on a salary record
type ExtraItem struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

// SalaryRecord is the monthly payroll record for one employee.
// All amounts are stored as entered; derived figures (commission, gross,
// cash) are computed on demand and never persisted.
type SalaryRecord struct {
	shared.BaseAggregateRoot
	EmployeeID   uuid.UUID
	EmployeeName string
	Role         string
	PeriodYear   int
	PeriodMonth  int

	// SalesAmount is the commission base: the employee's attributable
	// sales for the period.
	SalesAmount decimal.Decimal

	SAC       decimal.Decimal // aguinaldo installment
	Advance   decimal.Decimal
	Receipt   decimal.Decimal // amount already paid against the official receipt
	Training  decimal.Decimal
	Vacation  decimal.Decimal
	Reception decimal.Decimal
	Other     decimal.Decimal
	Extras    []ExtraItem
}

// NewSalaryRecord creates a salary record for an employee and period
func NewSalaryRecord(employeeID uuid.UUID, employeeName, role string, year, month int) (*SalaryRecord, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID is required")
	}
	if strings.TrimSpace(employeeName) == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee name is required")
	}
	if strings.TrimSpace(role) == "" {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is required")
	}
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period year is out of range")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period month must be between 1 and 12")
	}

	return &SalaryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		EmployeeName:      employeeName,
		Role:              role,
		PeriodYear:        year,
		PeriodMonth:       month,
	}, nil
}

// Commission returns the commission for the period: sales amount times
// the role's commission rate.
func (r *SalaryRecord) Commission() decimal.Decimal {
	return r.SalesAmount.Mul(CommissionRate(r.Role))
}

// ExtrasTotal sums the extra payment lines
func (r *SalaryRecord) ExtrasTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.Extras {
		total = total.Add(e.Amount)
	}
	return total
}

// Breakdown is a computed salary result. Which fields are populated
// depends on the calculation that produced it.
type Breakdown struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Commission     decimal.Decimal `json:"commission"`
	ExtrasTotal    decimal.Decimal `json:"extras_total"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	CashTotal      decimal.Decimal `json:"cash_total"`
	InsuredTopUp   decimal.Decimal `json:"insured_top_up"`
}

// ComputeSalarySingle computes the per-employee payout sheet.
//
// cash = commission + SAC - advance - receipt + training + vacation
// + extras + reception
//
// This formula and ComputeSalaryGlobal intentionally disagree on which
// concepts they include. They reproduce two different payout sheets the
// business keeps side by side; do not fold them into one.
func (r *SalaryRecord) ComputeSalarySingle() Breakdown {
	commission := r.Commission()
	extras := r.ExtrasTotal()

	gross := commission.
		Add(r.SAC).
		Add(r.Training).
		Add(r.Vacation).
		Add(extras).
		Add(r.Reception)

	cash := commission.
		Add(r.SAC).
		Sub(r.Advance).
		Sub(r.Receipt).
		Add(r.Training).
		Add(r.Vacation).
		Add(extras).
		Add(r.Reception)

	return Breakdown{
		CommissionRate: CommissionRate(r.Role),
		Commission:     commission,
		ExtrasTotal:    extras,
		GrossTotal:     gross,
		CashTotal:      cash,
	}
}

// ComputeSalaryGlobal computes the row used on the whole-salon monthly
// sheet.
//
// gross = commission + vacation + reception + other + receipt
// cash  = commission - advance + vacation + reception + other - receipt
//
// The insured top-up is the amount needed to reach the insured minimum:
// max(0, insuredMinimum - grossTotal). It only exists on this variant.
func (r *SalaryRecord) ComputeSalaryGlobal(insuredMinimum decimal.Decimal) Breakdown {
	commission := r.Commission()

	gross := commission.
		Add(r.Vacation).
		Add(r.Reception).
		Add(r.Other).
		Add(r.Receipt)

	cash := commission.
		Sub(r.Advance).
		Add(r.Vacation).
		Add(r.Reception).
		Add(r.Other).
		Sub(r.Receipt)

	topUp := insuredMinimum.Sub(gross)
	if topUp.IsNegative() {
		topUp = decimal.Zero
	}

	return Breakdown{
		CommissionRate: CommissionRate(r.Role),
		Commission:     commission,
		ExtrasTotal:    r.ExtrasTotal(),
		GrossTotal:     gross,
		CashTotal:      cash,
		InsuredTopUp:   topUp,
	}
}

// UpdateAmounts replaces the entered amounts on the record
func (r *SalaryRecord) UpdateAmounts(sales, sac, advance, receipt, training, vacation, reception, other decimal.Decimal, extras []ExtraItem) error {
	if sales.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Sales amount cannot be negative")
	}
	for _, e := range extras {
		if strings.TrimSpace(e.Concept) == "" {
			return shared.NewDomainError("INVALID_EXTRA", "Extra item concept is required")
		}
	}
	r.SalesAmount = sales
	r.SAC = sac
	r.Advance = advance
	r.Receipt = receipt
	r.Training = training
	r.Vacation = vacation
	r.Reception = reception
	r.Other = other
	r.Extras = extras
	r.Touch()
	return nil
}

// UpdateRole changes the role the commission rate derives from
func (r *SalaryRecord) UpdateRole(role string) error {
	if strings.TrimSpace(role) == "" {
		return shared.NewDomainError("INVALID_ROLE", "Role is required")
	}
	r.Role = role
	r.Touch()
	return nil
}
