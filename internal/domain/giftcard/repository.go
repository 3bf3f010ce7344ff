package giftcard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GiftCardFilter describes query options for listing gift cards.
// Status filtering happens against the derived status, so the reference
// time travels with the filter.
type GiftCardFilter struct {
	shared.Filter
	Status        *Status
	CustomerEmail *string
	PurchasedFrom *time.Time
	PurchasedTo   *time.Time
	Now           time.Time
}

// Repository defines persistence for gift cards
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GiftCard, error)
	FindByCode(ctx context.Context, code string) (*GiftCard, error)
	FindAll(ctx context.Context, filter GiftCardFilter) ([]GiftCard, error)
	Count(ctx context.Context, filter GiftCardFilter) (int64, error)
	Save(ctx context.Context, card *GiftCard) error
	SaveWithLock(ctx context.Context, card *GiftCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindCodes(ctx context.Context, codes []string) ([]string, error)
	SumRedeemedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
