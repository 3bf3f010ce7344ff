package giftcard

import (
	"time"

	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/infrastructure/excelimport"
	"github.com/shopspring/decimal"
)

// SellGiftCardRequest is the input for selling a gift card
type SellGiftCardRequest struct {
	Code          string          `json:"code" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerEmail string          `json:"customer_email" binding:"omitempty,email"`
	PurchaseDate  *time.Time      `json:"purchase_date"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	Notes         string          `json:"notes"`
}

// UpdateGiftCardRequest is the input for editing a gift card
type UpdateGiftCardRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Notes         string `json:"notes"`
}

// ListGiftCardsRequest is the input for listing gift cards
type ListGiftCardsRequest struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir"`
	Search        string `form:"search"`
	Status        string `form:"status"`
	CustomerEmail string `form:"customer_email"`
	PurchasedFrom string `form:"purchased_from"`
	PurchasedTo   string `form:"purchased_to"`
}

// GiftCardResponse is the API shape of a gift card. Status is derived
// from the dates at response time, never read from storage.
type GiftCardResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	RedeemedAt    *time.Time      `json:"redeemed_at,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ImportReport summarizes a bulk import run. Failed rows never stop the
// valid ones from landing.
type ImportReport struct {
	TotalRows  int                    `json:"total_rows"`
	Successful int                    `json:"successful"`
	Failed     int                    `json:"failed"`
	Errors     []excelimport.RowError `json:"errors,omitempty"`
}

func toGiftCardResponse(card *giftcard.GiftCard, now time.Time) GiftCardResponse {
	return GiftCardResponse{
		ID:            card.ID.String(),
		Code:          card.Code,
		Amount:        card.Amount.Amount(),
		Currency:      string(card.Amount.Currency()),
		Status:        card.StatusAt(now).String(),
		CustomerName:  card.CustomerName,
		CustomerEmail: card.CustomerEmail,
		PurchaseDate:  card.PurchaseDate,
		ExpiryDate:    card.ExpiryDate,
		RedeemedAt:    card.RedeemedAt,
		Notes:         card.Notes,
		CreatedAt:     card.CreatedAt,
		UpdatedAt:     card.UpdatedAt,
	}
}
