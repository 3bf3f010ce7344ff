package giftcard

import (
	"strings"
	"time"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// Status is the lifecycle state of a gift card. It is always derived
// from the card's dates, never stored as the source of truth.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusRedeemed Status = "redeemed"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusRedeemed:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// DefaultValidityDays is how long a card stays redeemable when no
// explicit expiry date is given.
const DefaultValidityDays = 30

// GiftCard is a prepaid card sold to a customer
type GiftCard struct {
	shared.BaseAggregateRoot
	Code          string
	Amount        valueobject.Money
	CustomerName  string
	CustomerEmail string
	PurchaseDate  time.Time
	ExpiryDate    time.Time
	RedeemedAt    *time.Time
	Notes         string
}

// NewGiftCard creates a gift card. When expiry is nil the card expires
// validityDays after purchase; non-positive validityDays falls back to
// DefaultValidityDays.
func NewGiftCard(code string, amount valueobject.Money, customerName, customerEmail string, purchaseDate time.Time, expiry *time.Time, validityDays int, notes string) (*GiftCard, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Gift card code is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Gift card amount must be positive")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PURCHASE_DATE", "Purchase date is required")
	}

	expiryDate := resolveExpiry(purchaseDate, expiry, validityDays)
	if expiryDate.Before(purchaseDate) {
		return nil, shared.NewDomainError("INVALID_EXPIRY_DATE", "Expiry date cannot precede purchase date")
	}

	card := &GiftCard{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Amount:            amount,
		CustomerName:      customerName,
		CustomerEmail:     strings.TrimSpace(customerEmail),
		PurchaseDate:      purchaseDate,
		ExpiryDate:        expiryDate,
		Notes:             notes,
	}
	card.AddDomainEvent(NewGiftCardSoldEvent(card))
	return card, nil
}

func resolveExpiry(purchase time.Time, expiry *time.Time, validityDays int) time.Time {
	if expiry != nil && !expiry.IsZero() {
		return *expiry
	}
	if validityDays <= 0 {
		validityDays = DefaultValidityDays
	}
	return purchase.AddDate(0, 0, validityDays)
}

// StatusAt derives the card status at a reference time. A redemption
// date always wins, even when it lies past the expiry date.
func (g *GiftCard) StatusAt(now time.Time) Status {
	if g.RedeemedAt != nil {
		return StatusRedeemed
	}
	if now.After(g.ExpiryDate) {
		return StatusExpired
	}
	return StatusActive
}

// Status derives the card status as of now
func (g *GiftCard) Status() Status {
	return g.StatusAt(time.Now())
}

// Redeem marks the card as redeemed at the given time
func (g *GiftCard) Redeem(now time.Time) error {
	switch g.StatusAt(now) {
	case StatusRedeemed:
		return shared.NewDomainError("ALREADY_REDEEMED", "Gift card has already been redeemed")
	case StatusExpired:
		return shared.NewDomainError("CARD_EXPIRED", "Gift card has expired")
	}
	redeemed := now
	g.RedeemedAt = &redeemed
	g.Touch()
	g.AddDomainEvent(NewGiftCardRedeemedEvent(g))
	return nil
}

// CancelRedemption clears the redemption, returning the card to its
// date-derived state.
func (g *GiftCard) CancelRedemption() error {
	if g.RedeemedAt == nil {
		return shared.NewDomainError("NOT_REDEEMED", "Gift card is not redeemed")
	}
	g.RedeemedAt = nil
	g.Touch()
	return nil
}

// UpdateNotes replaces the free-form notes
func (g *GiftCard) UpdateNotes(notes string) {
	g.Notes = notes
	g.Touch()
}

// UpdateCustomer updates the customer contact details
func (g *GiftCard) UpdateCustomer(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	g.CustomerName = name
	g.CustomerEmail = strings.TrimSpace(email)
	g.Touch()
	return nil
}
