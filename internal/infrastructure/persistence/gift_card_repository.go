package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormGiftCardRepository implements giftcard.Repository using GORM
type GormGiftCardRepository struct {
	db *gorm.DB
}

// NewGormGiftCardRepository creates a new GormGiftCardRepository
func NewGormGiftCardRepository(db *gorm.DB) *GormGiftCardRepository {
	return &GormGiftCardRepository{db: db}
}

// FindByID finds a gift card by its ID
func (r *GormGiftCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*giftcard.GiftCard, error) {
	var model models.GiftCardModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a gift card by its code
func (r *GormGiftCardRepository) FindByCode(ctx context.Context, code string) (*giftcard.GiftCard, error) {
	var model models.GiftCardModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds gift cards with filtering
func (r *GormGiftCardRepository) FindAll(ctx context.Context, filter giftcard.GiftCardFilter) ([]giftcard.GiftCard, error) {
	var cardModels []models.GiftCardModel
	query := r.db.WithContext(ctx).Model(&models.GiftCardModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&cardModels).Error; err != nil {
		return nil, err
	}
	cards := make([]giftcard.GiftCard, len(cardModels))
	for i, model := range cardModels {
		cards[i] = *model.ToDomain()
	}
	return cards, nil
}

// Count counts gift cards with filtering
func (r *GormGiftCardRepository) Count(ctx context.Context, filter giftcard.GiftCardFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.GiftCardModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a gift card
func (r *GormGiftCardRepository) Save(ctx context.Context, card *giftcard.GiftCard) error {
	model := models.GiftCardModelFromDomain(card)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the gift card with optimistic locking
func (r *GormGiftCardRepository) SaveWithLock(ctx context.Context, card *giftcard.GiftCard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.GiftCardModel
		if err := tx.Select("version").Where("id = ?", card.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				model := models.GiftCardModelFromDomain(card)
				return tx.Create(model).Error
			}
			return err
		}

		expectedVersion := card.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Gift card has been modified by another user")
		}

		model := models.GiftCardModelFromDomain(card)
		result := tx.Model(model).
			Where("id = ? AND version = ?", card.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Gift card has been modified by another user")
		}
		return nil
	})
}

// Delete deletes a gift card
func (r *GormGiftCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GiftCardModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode reports whether a card with the code already exists
func (r *GormGiftCardRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.GiftCardModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindCodes returns the subset of the given codes that already exist.
// Used by bulk import to detect duplicates in one round trip.
func (r *GormGiftCardRepository) FindCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var existing []string
	if err := r.db.WithContext(ctx).Model(&models.GiftCardModel{}).
		Where("code IN ?", codes).
		Pluck("code", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// SumRedeemedBetween sums the amounts of cards redeemed in the range
func (r *GormGiftCardRepository) SumRedeemedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.GiftCardModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("redeemed_at IS NOT NULL AND redeemed_at >= ? AND redeemed_at < ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter conditions to query
func (r *GormGiftCardRepository) applyFilter(query *gorm.DB, filter giftcard.GiftCardFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, GiftCardSortFields, "purchase_date")
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

// applyFilterWithoutPagination applies filter conditions without pagination.
// Status is derived from dates, so the status filter translates into date
// predicates against filter.Now.
func (r *GormGiftCardRepository) applyFilterWithoutPagination(query *gorm.DB, filter giftcard.GiftCardFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(code ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.CustomerEmail != nil {
		query = query.Where("customer_email = ?", *filter.CustomerEmail)
	}
	if filter.PurchasedFrom != nil {
		query = query.Where("purchase_date >= ?", filter.PurchasedFrom)
	}
	if filter.PurchasedTo != nil {
		query = query.Where("purchase_date <= ?", filter.PurchasedTo)
	}
	if filter.Status != nil {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		switch *filter.Status {
		case giftcard.StatusRedeemed:
			query = query.Where("redeemed_at IS NOT NULL")
		case giftcard.StatusExpired:
			query = query.Where("redeemed_at IS NULL AND expiry_date < ?", now)
		case giftcard.StatusActive:
			query = query.Where("redeemed_at IS NULL AND expiry_date >= ?", now)
		}
	}
	return query
}
