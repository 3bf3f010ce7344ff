// Package giftcard contains the application services for gift cards,
// including the bulk Excel import.
package giftcard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/salon/backend/internal/infrastructure/excelimport"
	"go.uber.org/zap"
)

// Service handles gift card operations
type Service struct {
	cardRepo     giftcard.Repository
	bus          event.Bus
	validityDays int
	logger       *zap.Logger
}

// NewService creates a gift card service. validityDays is the expiry
// window applied when a card is sold without an explicit expiry date.
func NewService(cardRepo giftcard.Repository, bus event.Bus, validityDays int, logger *zap.Logger) *Service {
	return &Service{
		cardRepo:     cardRepo,
		bus:          bus,
		validityDays: validityDays,
		logger:       logger,
	}
}

// Sell creates a gift card for a customer
func (s *Service) Sell(ctx context.Context, req SellGiftCardRequest) (*GiftCardResponse, error) {
	exists, err := s.cardRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A gift card with this code already exists")
	}

	amount, err := valueobject.NewMoney(req.Amount, valueobject.ARS)
	if err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil && !req.PurchaseDate.IsZero() {
		purchaseDate = *req.PurchaseDate
	}

	card, err := giftcard.NewGiftCard(req.Code, amount, req.CustomerName, req.CustomerEmail,
		purchaseDate, req.ExpiryDate, s.validityDays, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, card)

	s.logger.Info("gift card sold",
		zap.String("code", card.Code),
		zap.String("amount", card.Amount.StringFixed(2)),
	)

	resp := toGiftCardResponse(card, time.Now())
	return &resp, nil
}

// Get returns one gift card by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*GiftCardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toGiftCardResponse(card, time.Now())
	return &resp, nil
}

// GetByCode returns one gift card by its printed code
func (s *Service) GetByCode(ctx context.Context, code string) (*GiftCardResponse, error) {
	card, err := s.cardRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := toGiftCardResponse(card, time.Now())
	return &resp, nil
}

// List returns gift cards matching the filter
func (s *Service) List(ctx context.Context, req ListGiftCardsRequest) ([]GiftCardResponse, int64, error) {
	now := time.Now()
	filter := giftcard.GiftCardFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
		Now: now,
	}
	if req.Status != "" {
		status := giftcard.Status(req.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATE", "Unknown gift card status")
		}
		filter.Status = &status
	}
	if req.CustomerEmail != "" {
		filter.CustomerEmail = &req.CustomerEmail
	}
	if req.PurchasedFrom != "" {
		from, err := time.Parse("2006-01-02", req.PurchasedFrom)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "purchased_from must be YYYY-MM-DD")
		}
		filter.PurchasedFrom = &from
	}
	if req.PurchasedTo != "" {
		to, err := time.Parse("2006-01-02", req.PurchasedTo)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "purchased_to must be YYYY-MM-DD")
		}
		filter.PurchasedTo = &to
	}

	cards, err := s.cardRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]GiftCardResponse, len(cards))
	for i := range cards {
		responses[i] = toGiftCardResponse(&cards[i], now)
	}
	return responses, total, nil
}

// Redeem marks a card as redeemed now
func (s *Service) Redeem(ctx context.Context, id uuid.UUID) (*GiftCardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := card.Redeem(time.Now()); err != nil {
		return nil, err
	}
	if err := s.cardRepo.SaveWithLock(ctx, card); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, card)

	resp := toGiftCardResponse(card, time.Now())
	return &resp, nil
}

// CancelRedemption clears a card's redemption, returning it to its
// date-derived status.
func (s *Service) CancelRedemption(ctx context.Context, id uuid.UUID) (*GiftCardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := card.CancelRedemption(); err != nil {
		return nil, err
	}
	if err := s.cardRepo.SaveWithLock(ctx, card); err != nil {
		return nil, err
	}
	resp := toGiftCardResponse(card, time.Now())
	return &resp, nil
}

// Update edits the customer details and notes of a card
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateGiftCardRequest) (*GiftCardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := card.UpdateCustomer(req.CustomerName, req.CustomerEmail); err != nil {
		return nil, err
	}
	card.UpdateNotes(req.Notes)
	if err := s.cardRepo.SaveWithLock(ctx, card); err != nil {
		return nil, err
	}
	resp := toGiftCardResponse(card, time.Now())
	return &resp, nil
}

// Delete removes a gift card
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cardRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.cardRepo.Delete(ctx, id)
}

func (s *Service) publishEvents(ctx context.Context, card *giftcard.GiftCard) {
	events := card.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.bus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish gift card events", zap.Error(err))
	}
	card.ClearDomainEvents()
}

// Import loads a gift card Excel sheet. Rows are validated one by one:
// bad rows are reported and skipped, good rows are created. A duplicate
// code, whether inside the sheet or against the database, fails only
// its own row.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportReport, error) {
	rows, result, err := excelimport.ParseGiftCardRows(data, 0)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{
		TotalRows: result.TotalRows,
		Failed:    result.ErrorRows,
		Errors:    result.Errors,
	}

	// One round trip to find which sheet codes already exist
	codes := make([]string, len(rows))
	for i, row := range rows {
		codes[i] = row.Code
	}
	existing, err := s.cardRepo.FindCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, code := range existing {
		taken[code] = true
	}

	for _, row := range rows {
		if taken[row.Code] {
			report.Failed++
			report.Errors = append(report.Errors, excelimport.RowError{
				Row:     row.LineNumber,
				Column:  excelimport.ColCode,
				Code:    excelimport.ErrCodeImportDuplicateInDB,
				Message: "A gift card with this code already exists",
				Value:   row.Code,
			})
			continue
		}

		card, err := giftcard.NewGiftCard(row.Code, valueobject.NewMoneyARS(row.Amount),
			row.CustomerName, row.CustomerEmail, row.PurchaseDate, row.ExpiryDate, s.validityDays, row.Notes)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, rowErrorFromDomain(row.LineNumber, err))
			continue
		}
		if row.RedeemedDate != nil {
			redeemed := *row.RedeemedDate
			card.RedeemedAt = &redeemed
		}

		if err := s.cardRepo.Save(ctx, card); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, rowErrorFromDomain(row.LineNumber, err))
			continue
		}
		report.Successful++
	}

	s.logger.Info("gift card import finished",
		zap.Int("total", report.TotalRows),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func rowErrorFromDomain(line int, err error) excelimport.RowError {
	rowErr := excelimport.RowError{
		Row:     line,
		Code:    excelimport.ErrCodeImportInvalidValue,
		Message: err.Error(),
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		rowErr.Code = domainErr.Code
		rowErr.Message = domainErr.Message
	}
	return rowErr
}
