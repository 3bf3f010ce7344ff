package giftcard

import (
	"testing"
	"time"

	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var purchase = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestCard(t *testing.T, expiry *time.Time, validityDays int) *GiftCard {
	t.Helper()
	card, err := NewGiftCard("GC-001", valueobject.NewMoneyARSFromFloat(15000),
		"Laura Diaz", "laura@example.com", purchase, expiry, validityDays, "")
	require.NoError(t, err)
	return card
}

func TestNewGiftCard_ExpiryAutoFill(t *testing.T) {
	card := newTestCard(t, nil, 0)
	assert.Equal(t, purchase.AddDate(0, 0, DefaultValidityDays), card.ExpiryDate)

	card = newTestCard(t, nil, 45)
	assert.Equal(t, purchase.AddDate(0, 0, 45), card.ExpiryDate)
}

func TestNewGiftCard_ExplicitExpiryWins(t *testing.T) {
	expiry := purchase.AddDate(0, 3, 0)
	card := newTestCard(t, &expiry, 30)
	assert.Equal(t, expiry, card.ExpiryDate)
}

func TestNewGiftCard_Validation(t *testing.T) {
	amount := valueobject.NewMoneyARSFromFloat(100)

	_, err := NewGiftCard("", amount, "Laura", "", purchase, nil, 0, "")
	assert.Error(t, err, "empty code")

	_, err = NewGiftCard("GC-1", valueobject.ZeroARS(), "Laura", "", purchase, nil, 0, "")
	assert.Error(t, err, "zero amount")

	_, err = NewGiftCard("GC-1", amount, "", "", purchase, nil, 0, "")
	assert.Error(t, err, "empty customer")

	_, err = NewGiftCard("GC-1", amount, "Laura", "", time.Time{}, nil, 0, "")
	assert.Error(t, err, "zero purchase date")

	before := purchase.AddDate(0, 0, -1)
	_, err = NewGiftCard("GC-1", amount, "Laura", "", purchase, &before, 0, "")
	assert.Error(t, err, "expiry before purchase")
}

func TestStatusDerivation(t *testing.T) {
	card := newTestCard(t, nil, 30)
	expiry := card.ExpiryDate

	assert.Equal(t, StatusActive, card.StatusAt(purchase))
	assert.Equal(t, StatusActive, card.StatusAt(expiry), "not expired on the expiry day itself")
	assert.Equal(t, StatusExpired, card.StatusAt(expiry.AddDate(0, 0, 1)))

	redeemed := purchase.AddDate(0, 0, 10)
	card.RedeemedAt = &redeemed
	assert.Equal(t, StatusRedeemed, card.StatusAt(purchase.AddDate(0, 0, 11)))
	// Redemption outranks expiry.
	assert.Equal(t, StatusRedeemed, card.StatusAt(expiry.AddDate(0, 1, 0)))
}

func TestRedeem(t *testing.T) {
	card := newTestCard(t, nil, 30)
	now := purchase.AddDate(0, 0, 5)

	require.NoError(t, card.Redeem(now))
	require.NotNil(t, card.RedeemedAt)
	assert.Equal(t, now, *card.RedeemedAt)

	err := card.Redeem(now.AddDate(0, 0, 1))
	assert.Error(t, err, "double redeem")
}

func TestRedeem_Expired(t *testing.T) {
	card := newTestCard(t, nil, 30)
	err := card.Redeem(card.ExpiryDate.AddDate(0, 0, 1))
	assert.Error(t, err)
	assert.Nil(t, card.RedeemedAt)
}

func TestCancelRedemption(t *testing.T) {
	card := newTestCard(t, nil, 30)
	assert.Error(t, card.CancelRedemption())

	require.NoError(t, card.Redeem(purchase.AddDate(0, 0, 2)))
	require.NoError(t, card.CancelRedemption())
	assert.Equal(t, StatusActive, card.StatusAt(purchase.AddDate(0, 0, 3)))
}

func TestGiftCardEvents(t *testing.T) {
	card := newTestCard(t, nil, 30)
	events := card.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventGiftCardSold, events[0].EventType())

	card.ClearDomainEvents()
	require.NoError(t, card.Redeem(purchase.AddDate(0, 0, 1)))
	events = card.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventGiftCardRedeemed, events[0].EventType())
}
