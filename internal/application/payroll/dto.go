package payroll

import (
	"time"

	"github.com/salon/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CreateSalaryRecordRequest is the input for creating a salary record
type CreateSalaryRecordRequest struct {
	EmployeeID  string           `json:"employee_id" binding:"required,uuid"`
	PeriodYear  int              `json:"period_year" binding:"required,min=2000,max=2100"`
	PeriodMonth int              `json:"period_month" binding:"required,min=1,max=12"`
	SalesAmount decimal.Decimal  `json:"sales_amount"`
	SAC         decimal.Decimal  `json:"sac"`
	Advance     decimal.Decimal  `json:"advance"`
	Receipt     decimal.Decimal  `json:"receipt"`
	Training    decimal.Decimal  `json:"training"`
	Vacation    decimal.Decimal  `json:"vacation"`
	Reception   decimal.Decimal  `json:"reception"`
	Other       decimal.Decimal  `json:"other"`
	Extras      []ExtraItemInput `json:"extras"`
}

// UpdateSalaryRecordRequest is the input for updating a salary record
type UpdateSalaryRecordRequest struct {
	SalesAmount decimal.Decimal  `json:"sales_amount"`
	SAC         decimal.Decimal  `json:"sac"`
	Advance     decimal.Decimal  `json:"advance"`
	Receipt     decimal.Decimal  `json:"receipt"`
	Training    decimal.Decimal  `json:"training"`
	Vacation    decimal.Decimal  `json:"vacation"`
	Reception   decimal.Decimal  `json:"reception"`
	Other       decimal.Decimal  `json:"other"`
	Extras      []ExtraItemInput `json:"extras"`
}

// ExtraItemInput is one free-form extra payment line
type ExtraItemInput struct {
	Concept string          `json:"concept" binding:"required"`
	Amount  decimal.Decimal `json:"amount"`
}

// ListSalaryRecordsRequest is the input for listing salary records
type ListSalaryRecordsRequest struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	Search      string `form:"search"`
	EmployeeID  string `form:"employee_id"`
	PeriodYear  int    `form:"period_year"`
	PeriodMonth int    `form:"period_month"`
}

// SalaryRecordResponse is the API shape of a salary record
type SalaryRecordResponse struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Role         string           `json:"role"`
	PeriodYear   int              `json:"period_year"`
	PeriodMonth  int              `json:"period_month"`
	SalesAmount  decimal.Decimal  `json:"sales_amount"`
	SAC          decimal.Decimal  `json:"sac"`
	Advance      decimal.Decimal  `json:"advance"`
	Receipt      decimal.Decimal  `json:"receipt"`
	Training     decimal.Decimal  `json:"training"`
	Vacation     decimal.Decimal  `json:"vacation"`
	Reception    decimal.Decimal  `json:"reception"`
	Other        decimal.Decimal  `json:"other"`
	Extras       []ExtraItemInput `json:"extras"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Version      int              `json:"version"`
}

// BreakdownResponse is a computed salary result
type BreakdownResponse struct {
	Variant        string          `json:"variant"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Commission     decimal.Decimal `json:"commission"`
	ExtrasTotal    decimal.Decimal `json:"extras_total"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	CashTotal      decimal.Decimal `json:"cash_total"`
	InsuredTopUp   decimal.Decimal `json:"insured_top_up,omitempty"`
}

// SalaryComputationResponse pairs a record with one computed breakdown
type SalaryComputationResponse struct {
	Record    SalaryRecordResponse `json:"record"`
	Breakdown BreakdownResponse    `json:"breakdown"`
}

// GlobalSheetRowResponse is one employee row on the whole-salon sheet
type GlobalSheetRowResponse struct {
	Record    SalaryRecordResponse `json:"record"`
	Breakdown BreakdownResponse    `json:"breakdown"`
}

// GlobalSheetResponse is the whole-salon monthly payroll sheet
type GlobalSheetResponse struct {
	PeriodYear     int                      `json:"period_year"`
	PeriodMonth    int                      `json:"period_month"`
	InsuredMinimum decimal.Decimal          `json:"insured_minimum"`
	Rows           []GlobalSheetRowResponse `json:"rows"`
	TotalCash      decimal.Decimal          `json:"total_cash"`
	TotalTopUp     decimal.Decimal          `json:"total_top_up"`
}

func toExtraInputs(extras []payroll.ExtraItem) []ExtraItemInput {
	if len(extras) == 0 {
		return nil
	}
	out := make([]ExtraItemInput, len(extras))
	for i, e := range extras {
		out[i] = ExtraItemInput{Concept: e.Concept, Amount: e.Amount}
	}
	return out
}

func toExtraItems(inputs []ExtraItemInput) []payroll.ExtraItem {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]payroll.ExtraItem, len(inputs))
	for i, in := range inputs {
		out[i] = payroll.ExtraItem{Concept: in.Concept, Amount: in.Amount}
	}
	return out
}

func toSalaryRecordResponse(record *payroll.SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:           record.ID.String(),
		EmployeeID:   record.EmployeeID.String(),
		EmployeeName: record.EmployeeName,
		Role:         record.Role,
		PeriodYear:   record.PeriodYear,
		PeriodMonth:  record.PeriodMonth,
		SalesAmount:  record.SalesAmount,
		SAC:          record.SAC,
		Advance:      record.Advance,
		Receipt:      record.Receipt,
		Training:     record.Training,
		Vacation:     record.Vacation,
		Reception:    record.Reception,
		Other:        record.Other,
		Extras:       toExtraInputs(record.Extras),
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		Version:      record.GetVersion(),
	}
}

func toBreakdownResponse(variant string, b payroll.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Variant:        variant,
		CommissionRate: b.CommissionRate,
		Commission:     b.Commission,
		ExtrasTotal:    b.ExtrasTotal,
		GrossTotal:     b.GrossTotal,
		CashTotal:      b.CashTotal,
		InsuredTopUp:   b.InsuredTopUp,
	}
}
