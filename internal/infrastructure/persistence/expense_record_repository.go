package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/expense"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRecordRepository implements expense.Repository using GORM
type GormExpenseRecordRepository struct {
	db *gorm.DB
}

// NewGormExpenseRecordRepository creates a new GormExpenseRecordRepository
func NewGormExpenseRecordRepository(db *gorm.DB) *GormExpenseRecordRepository {
	return &GormExpenseRecordRepository{db: db}
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpenseRecord, error) {
	var model models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expense records with filtering
func (r *GormExpenseRecordRepository) FindAll(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseRecord, error) {
	var expenseModels []models.ExpenseRecordModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]expense.ExpenseRecord, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Count counts expense records with filtering
func (r *GormExpenseRecordRepository) Count(ctx context.Context, filter expense.ExpenseFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense record
func (r *GormExpenseRecordRepository) Save(ctx context.Context, record *expense.ExpenseRecord) error {
	model := models.ExpenseRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an expense record
func (r *GormExpenseRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumBetween sums all expenses with a date in [from, to)
func (r *GormExpenseRecordRepository) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumByCategoryBetween sums expenses per category with a date in [from, to)
func (r *GormExpenseRecordRepository) SumByCategoryBetween(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error) {
	var rows []struct {
		Category string
		Total    decimal.Decimal
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make([]expense.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = expense.CategoryTotal{
			Category: expense.Category(row.Category),
			Total:    row.Total,
			Count:    row.Count,
		}
	}
	return totals, nil
}

// applyFilter applies filter conditions to query
func (r *GormExpenseRecordRepository) applyFilter(query *gorm.DB, filter expense.ExpenseFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ExpenseRecordSortFields, "expense_date")
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
func (r *GormExpenseRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter expense.ExpenseFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(description ILIKE ? OR supplier_note ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.DateFrom != nil {
		query = query.Where("expense_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("expense_date <= ?", filter.DateTo)
	}
	return query
}
