package expense

import (
	"strings"
	"time"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// Category classifies an expense for reporting
type Category string

const (
	CategoryRent        Category = "rent"
	CategorySalaries    Category = "salaries"
	CategoryProducts    Category = "products"
	CategoryServices    Category = "services"
	CategoryMaintenance Category = "maintenance"
	CategoryTaxes       Category = "taxes"
	CategoryMarketing   Category = "marketing"
	CategoryOther       Category = "other"
)

// AllCategories lists every category in reporting order
func AllCategories() []Category {
	return []Category{
		CategoryRent,
		CategorySalaries,
		CategoryProducts,
		CategoryServices,
		CategoryMaintenance,
		CategoryTaxes,
		CategoryMarketing,
		CategoryOther,
	}
}

// IsValid checks if the category is a known value
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// DisplayName returns a human-readable label
func (c Category) DisplayName() string {
	switch c {
	case CategoryRent:
		return "Rent"
	case CategorySalaries:
		return "Salaries"
	case CategoryProducts:
		return "Products"
	case CategoryServices:
		return "Services"
	case CategoryMaintenance:
		return "Maintenance"
	case CategoryTaxes:
		return "Taxes"
	case CategoryMarketing:
		return "Marketing"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// PaymentMethod is how an expense was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// IsValid checks if the payment method is a known value
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// ExpenseRecord is a single outgoing payment of the salon
type ExpenseRecord struct {
	shared.BaseAggregateRoot
	Category      Category
	Description   string
	Amount        valueobject.Money
	ExpenseDate   time.Time
	PaymentMethod PaymentMethod
	SupplierNote  string
}

// NewExpenseRecord creates an expense record
func NewExpenseRecord(category Category, description string, amount valueobject.Money, expenseDate time.Time, paymentMethod PaymentMethod, supplierNote string) (*ExpenseRecord, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if paymentMethod != "" && !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &ExpenseRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Description:       description,
		Amount:            amount,
		ExpenseDate:       expenseDate,
		PaymentMethod:     paymentMethod,
		SupplierNote:      supplierNote,
	}, nil
}

// Update replaces the editable fields of the record
func (e *ExpenseRecord) Update(category Category, description string, amount valueobject.Money, expenseDate time.Time, paymentMethod PaymentMethod, supplierNote string) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if paymentMethod != "" && !paymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	e.Category = category
	e.Description = description
	e.Amount = amount
	e.ExpenseDate = expenseDate
	e.PaymentMethod = paymentMethod
	e.SupplierNote = supplierNote
	e.Touch()
	return nil
}
