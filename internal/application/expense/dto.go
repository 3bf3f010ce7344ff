package expense

import (
	"time"

	"github.com/salon/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the input for recording an expense
type CreateExpenseRequest struct {
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate   time.Time       `json:"expense_date" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	SupplierNote  string          `json:"supplier_note"`
}

// UpdateExpenseRequest is the input for editing an expense
type UpdateExpenseRequest = CreateExpenseRequest

// ListExpensesRequest is the input for listing expenses
type ListExpensesRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Category string `form:"category"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// ExpenseResponse is the API shape of an expense record
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ExpenseDate   time.Time       `json:"expense_date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	SupplierNote  string          `json:"supplier_note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CategoryReportRow is one category's slice of a monthly report
type CategoryReportRow struct {
	Category       string          `json:"category"`
	CategoryLabel  string          `json:"category_label"`
	Total          decimal.Decimal `json:"total"`
	Count          int64           `json:"count"`
	PercentOfTotal decimal.Decimal `json:"percent_of_total"`
	// PercentChange is nil when the prior month had nothing in this
	// category; NoPriorData flags that instead of a fabricated number.
	PercentChange *decimal.Decimal `json:"percent_change,omitempty"`
	NoPriorData   bool             `json:"no_prior_data"`
}

// CategoryReportResponse is the monthly per-category expense report
type CategoryReportResponse struct {
	Period     string              `json:"period"`
	Total      decimal.Decimal     `json:"total"`
	PrevTotal  decimal.Decimal     `json:"prev_total"`
	Categories []CategoryReportRow `json:"categories"`
}

func toExpenseResponse(record *expense.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ID:            record.ID.String(),
		Category:      record.Category.String(),
		CategoryLabel: record.Category.DisplayName(),
		Description:   record.Description,
		Amount:        record.Amount.Amount(),
		Currency:      string(record.Amount.Currency()),
		ExpenseDate:   record.ExpenseDate,
		PaymentMethod: string(record.PaymentMethod),
		SupplierNote:  record.SupplierNote,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
