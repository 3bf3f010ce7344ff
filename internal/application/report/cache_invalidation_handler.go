package report

import (
	"context"
	"fmt"

	"github.com/salon/backend/internal/domain/billing"
	"github.com/salon/backend/internal/domain/giftcard"
	"github.com/salon/backend/internal/domain/report"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// CacheInvalidationHandler drops the cached financial summary of a
// month whenever a revenue event lands in it. The next summary request
// recomputes from the repositories.
type CacheInvalidationHandler struct {
	cache  cache.ReportCache
	logger *zap.Logger
}

// NewCacheInvalidationHandler creates a new handler for revenue events
func NewCacheInvalidationHandler(reportCache cache.ReportCache, logger *zap.Logger) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{
		cache:  reportCache,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CacheInvalidationHandler) EventTypes() []string {
	return []string{
		billing.EventInvoiceIssued,
		giftcard.EventGiftCardSold,
		giftcard.EventGiftCardRedeemed,
	}
}

// Handle invalidates the summary of the month the event occurred in
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	occurred := event.OccurredAt()
	period := report.Period{Year: occurred.Year(), Month: int(occurred.Month())}
	key := fmt.Sprintf("summary:%s", period)

	if err := h.cache.Invalidate(ctx, key); err != nil {
		h.logger.Warn("failed to invalidate cached summary",
			zap.String("key", key),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("cached summary invalidated",
		zap.String("key", key),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)
	return nil
}
