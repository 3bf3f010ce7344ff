package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// SalaryRecordSortFields contains allowed sort fields for salary records
var SalaryRecordSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"employee_name": true,
	"period_year":   true,
	"period_month":  true,
	"role":          true,
	"sales_amount":  true,
}

// GiftCardSortFields contains allowed sort fields for gift cards
var GiftCardSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"amount":        true,
	"customer_name": true,
	"purchase_date": true,
	"expiry_date":   true,
	"redeemed_at":   true,
}

// ExpenseRecordSortFields contains allowed sort fields for expense records
var ExpenseRecordSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"category":       true,
	"amount":         true,
	"expense_date":   true,
	"payment_method": true,
}

// EmployeeSortFields contains allowed sort fields for employees
var EmployeeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"role":       true,
	"hire_date":  true,
	"active":     true,
}

// StockItemSortFields contains allowed sort fields for stock items
var StockItemSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"category":     true,
	"quantity":     true,
	"min_quantity": true,
	"unit_cost":    true,
}

// ArregloSortFields contains allowed sort fields for arreglos
var ArregloSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"customer_name":  true,
	"status":         true,
	"price":          true,
	"received_date":  true,
	"promised_date":  true,
	"delivered_date": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"customer_name":  true,
	"status":         true,
	"issue_date":     true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"username":     true,
	"display_name": true,
	"role":         true,
	"active":       true,
}
