package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/arreglo"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormArregloRepository implements arreglo.Repository using GORM
type GormArregloRepository struct {
	db *gorm.DB
}

// NewGormArregloRepository creates a new GormArregloRepository
func NewGormArregloRepository(db *gorm.DB) *GormArregloRepository {
	return &GormArregloRepository{db: db}
}

// FindByID finds an arreglo by its ID
func (r *GormArregloRepository) FindByID(ctx context.Context, id uuid.UUID) (*arreglo.Arreglo, error) {
	var model models.ArregloModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds arreglos with filtering
func (r *GormArregloRepository) FindAll(ctx context.Context, filter arreglo.ArregloFilter) ([]arreglo.Arreglo, error) {
	var arregloModels []models.ArregloModel
	query := r.db.WithContext(ctx).Model(&models.ArregloModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&arregloModels).Error; err != nil {
		return nil, err
	}
	arreglos := make([]arreglo.Arreglo, len(arregloModels))
	for i, model := range arregloModels {
		arreglos[i] = *model.ToDomain()
	}
	return arreglos, nil
}

// Count counts arreglos with filtering
func (r *GormArregloRepository) Count(ctx context.Context, filter arreglo.ArregloFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ArregloModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an arreglo
func (r *GormArregloRepository) Save(ctx context.Context, a *arreglo.Arreglo) error {
	model := models.ArregloModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the arreglo with optimistic locking
func (r *GormArregloRepository) SaveWithLock(ctx context.Context, a *arreglo.Arreglo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.ArregloModel
		if err := tx.Select("version").Where("id = ?", a.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				model := models.ArregloModelFromDomain(a)
				return tx.Create(model).Error
			}
			return err
		}

		expectedVersion := a.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Arreglo has been modified by another user")
		}

		model := models.ArregloModelFromDomain(a)
		result := tx.Model(model).
			Where("id = ? AND version = ?", a.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Arreglo has been modified by another user")
		}
		return nil
	})
}

// Delete deletes an arreglo
func (r *GormArregloRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ArregloModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumCompletedBetween sums the prices of arreglos delivered in the range
func (r *GormArregloRepository) SumCompletedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.ArregloModel{}).
		Select("COALESCE(SUM(price), 0) AS total").
		Where("status = ? AND delivered_date >= ? AND delivered_date < ?",
			arreglo.StatusCompleted.String(), from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter conditions to query
func (r *GormArregloRepository) applyFilter(query *gorm.DB, filter arreglo.ArregloFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ArregloSortFields, "received_date")
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
func (r *GormArregloRepository) applyFilterWithoutPagination(query *gorm.DB, filter arreglo.ArregloFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(customer_name ILIKE ? OR description ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ReceivedFrom != nil {
		query = query.Where("received_date >= ?", filter.ReceivedFrom)
	}
	if filter.ReceivedTo != nil {
		query = query.Where("received_date <= ?", filter.ReceivedTo)
	}
	return query
}
