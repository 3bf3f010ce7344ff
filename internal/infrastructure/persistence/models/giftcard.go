package models

import (
	"time"

	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// GiftCardModel is the persistence model for the GiftCard domain entity.
// Status is never stored; it derives from the three dates at read time.
type GiftCardModel struct {
	AggregateModel
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_gift_card_code"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'ARS'"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	CustomerEmail string          `gorm:"type:varchar(200);index"`
	PurchaseDate  time.Time       `gorm:"not null;index"`
	ExpiryDate    time.Time       `gorm:"not null;index"`
	RedeemedAt    *time.Time      `gorm:"index"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GiftCardModel) TableName() string {
	return "gift_cards"
}

// ToDomain converts the persistence model to a domain GiftCard entity.
func (m *GiftCardModel) ToDomain() *giftcard.GiftCard {
	amount, err := valueobject.NewMoney(m.Amount, valueobject.Currency(m.Currency))
	if err != nil {
		amount = valueobject.NewMoneyARS(m.Amount)
	}
	card := &giftcard.GiftCard{
		Code:          m.Code,
		Amount:        amount,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		PurchaseDate:  m.PurchaseDate,
		ExpiryDate:    m.ExpiryDate,
		RedeemedAt:    m.RedeemedAt,
		Notes:         m.Notes,
	}
	m.PopulateAggregateRoot(&card.BaseAggregateRoot)
	return card
}

// FromDomain populates the persistence model from a domain GiftCard entity.
func (m *GiftCardModel) FromDomain(g *giftcard.GiftCard) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.Code = g.Code
	m.Amount = g.Amount.Amount()
	m.Currency = string(g.Amount.Currency())
	m.CustomerName = g.CustomerName
	m.CustomerEmail = g.CustomerEmail
	m.PurchaseDate = g.PurchaseDate
	m.ExpiryDate = g.ExpiryDate
	m.RedeemedAt = g.RedeemedAt
	m.Notes = g.Notes
}

// GiftCardModelFromDomain creates a new persistence model from a domain entity.
func GiftCardModelFromDomain(g *giftcard.GiftCard) *GiftCardModel {
	m := &GiftCardModel{}
	m.FromDomain(g)
	return m
}
