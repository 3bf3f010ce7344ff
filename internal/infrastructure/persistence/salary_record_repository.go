package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/payroll"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSalaryRecordRepository implements payroll.Repository using GORM
type GormSalaryRecordRepository struct {
	db *gorm.DB
}

// NewGormSalaryRecordRepository creates a new GormSalaryRecordRepository
func NewGormSalaryRecordRepository(db *gorm.DB) *GormSalaryRecordRepository {
	return &GormSalaryRecordRepository{db: db}
}

// FindByID finds a salary record by its ID
func (r *GormSalaryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.SalaryRecord, error) {
	var model models.SalaryRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployeeAndPeriod finds the record for one employee and period
func (r *GormSalaryRecordRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (*payroll.SalaryRecord, error) {
	var model models.SalaryRecordModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND period_year = ? AND period_month = ?", employeeID, year, month).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds salary records with filtering
func (r *GormSalaryRecordRepository) FindAll(ctx context.Context, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, error) {
	var recordModels []models.SalaryRecordModel
	query := r.db.WithContext(ctx).Model(&models.SalaryRecordModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]payroll.SalaryRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Count counts salary records with filtering
func (r *GormSalaryRecordRepository) Count(ctx context.Context, filter payroll.SalaryRecordFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SalaryRecordModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a salary record
func (r *GormSalaryRecordRepository) Save(ctx context.Context, record *payroll.SalaryRecord) error {
	model := models.SalaryRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the salary record with optimistic locking
func (r *GormSalaryRecordRepository) SaveWithLock(ctx context.Context, record *payroll.SalaryRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.SalaryRecordModel
		if err := tx.Select("version").Where("id = ?", record.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				model := models.SalaryRecordModelFromDomain(record)
				return tx.Create(model).Error
			}
			return err
		}

		// Domain model already incremented version
		expectedVersion := record.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Salary record has been modified by another user")
		}

		model := models.SalaryRecordModelFromDomain(record)
		result := tx.Model(model).
			Where("id = ? AND version = ?", record.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Salary record has been modified by another user")
		}
		return nil
	})
}

// Delete deletes a salary record
func (r *GormSalaryRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SalaryRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForPeriod reports whether the employee already has a record for the period
func (r *GormSalaryRecordRepository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, year, month int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SalaryRecordModel{}).
		Where("employee_id = ? AND period_year = ? AND period_month = ?", employeeID, year, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter conditions to query
func (r *GormSalaryRecordRepository) applyFilter(query *gorm.DB, filter payroll.SalaryRecordFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Sorting goes through the whitelist to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, SalaryRecordSortFields, "created_at")
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
func (r *GormSalaryRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter payroll.SalaryRecordFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(employee_name ILIKE ? OR role ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.PeriodYear != nil {
		query = query.Where("period_year = ?", *filter.PeriodYear)
	}
	if filter.PeriodMonth != nil {
		query = query.Where("period_month = ?", *filter.PeriodMonth)
	}
	return query
}
