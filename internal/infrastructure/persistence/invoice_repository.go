package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Where("invoice_number = ?", invoiceNumber).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices with filtering
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Count counts invoices with filtering
func (r *GormInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return translateInvoiceError(r.db.WithContext(ctx).Save(model).Error)
}

// translateInvoiceError maps the unique-index violation on
// invoice_number to the domain sentinel so the service can retry with
// a fresh number instead of surfacing a driver error.
func translateInvoiceError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("invoice number already taken: %w", shared.ErrAlreadyExists)
	}
	return err
}

// SaveWithLock saves the invoice with optimistic locking
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.InvoiceModel
		if err := tx.Select("version").Where("id = ?", invoice.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				model := models.InvoiceModelFromDomain(invoice)
				return translateInvoiceError(tx.Create(model).Error)
			}
			return err
		}

		expectedVersion := invoice.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Invoice has been modified by another user")
		}

		model := models.InvoiceModelFromDomain(invoice)
		result := tx.Model(model).
			Where("id = ? AND version = ?", invoice.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return translateInvoiceError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Invoice has been modified by another user")
		}
		return nil
	})
}

// Delete deletes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateInvoiceNumber generates the next number in the
// INV-YYYYMM-NNNNN sequence for the given period. Concurrent issues
// may still produce the same candidate; the unique index on
// invoice_number rejects the loser and the service retries.
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, yearMonth string) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("invoice_number LIKE ?", fmt.Sprintf("INV-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%05d", yearMonth, count+1), nil
}

// SumIssuedBetween sums the totals of invoices issued in the range.
// Totals live inside the lines JSON, so the sum happens in Go.
func (r *GormInvoiceRepository) SumIssuedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("status = ? AND issue_date >= ? AND issue_date < ?",
			billing.InvoiceStatusIssued.String(), from, to).
		Find(&invoiceModels).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, model := range invoiceModels {
		total = total.Add(model.ToDomain().Total())
	}
	return total, nil
}

// applyFilter applies filter conditions to query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(invoice_number ILIKE ? OR customer_name ILIKE ? OR customer_tax_id ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issue_date >= ?", filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		query = query.Where("issue_date <= ?", filter.IssuedTo)
	}
	return query
}
