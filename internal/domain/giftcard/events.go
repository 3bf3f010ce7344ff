package giftcard

import (
	"github.com/salon/backend/internal/domain/shared"
)

const (
	EventGiftCardSold     = "giftcard.sold"
	EventGiftCardRedeemed = "giftcard.redeemed"
)

// GiftCardSoldEvent is raised when a card is created
type GiftCardSoldEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

// NewGiftCardSoldEvent creates a sold event for a card
func NewGiftCardSoldEvent(card *GiftCard) *GiftCardSoldEvent {
	return &GiftCardSoldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGiftCardSold, "GiftCard", card.ID),
		Code:            card.Code,
		Amount:          card.Amount.StringFixed(2),
	}
}

// GiftCardRedeemedEvent is raised when a card is redeemed
type GiftCardRedeemedEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

// NewGiftCardRedeemedEvent creates a redeemed event for a card
func NewGiftCardRedeemedEvent(card *GiftCard) *GiftCardRedeemedEvent {
	return &GiftCardRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGiftCardRedeemed, "GiftCard", card.ID),
		Code:            card.Code,
		Amount:          card.Amount.StringFixed(2),
	}
}
