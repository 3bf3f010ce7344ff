// Package inventory contains the application services for salon stock.
package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/inventory"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles stock item operations
type Service struct {
	itemRepo inventory.Repository
	logger   *zap.Logger
}

// NewService creates an inventory service
func NewService(itemRepo inventory.Repository, logger *zap.Logger) *Service {
	return &Service{itemRepo: itemRepo, logger: logger}
}

// Create adds a stock item
func (s *Service) Create(ctx context.Context, req CreateStockItemRequest) (*StockItemResponse, error) {
	exists, err := s.itemRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A stock item with this name already exists")
	}

	unitCost, err := valueobject.NewMoney(req.UnitCost, valueobject.ARS)
	if err != nil {
		return nil, err
	}
	item, err := inventory.NewStockItem(req.Name, req.Category, req.Quantity, req.Unit, req.MinQuantity, unitCost)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("stock item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
	)

	resp := toStockItemResponse(item)
	return &resp, nil
}

// Get returns one stock item
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStockItemResponse(item)
	return &resp, nil
}

// Update edits a stock item's details
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateStockItemRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	unitCost, err := valueobject.NewMoney(req.UnitCost, valueobject.ARS)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, req.Category, req.Unit, req.MinQuantity, unitCost); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	resp := toStockItemResponse(item)
	return &resp, nil
}

// Restock adds quantity to an item
func (s *Service) Restock(ctx context.Context, id uuid.UUID, req MovementRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Restock(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	resp := toStockItemResponse(item)
	return &resp, nil
}

// Consume removes quantity from an item. Stock never goes negative.
func (s *Service) Consume(ctx context.Context, id uuid.UUID, req MovementRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Consume(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	if item.IsLowStock() {
		s.logger.Warn("stock item below minimum",
			zap.String("name", item.Name),
			zap.Int("quantity", item.Quantity),
			zap.Int("min_quantity", item.MinQuantity),
		)
	}

	resp := toStockItemResponse(item)
	return &resp, nil
}

// Delete removes a stock item
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// List returns stock items matching the filter
func (s *Service) List(ctx context.Context, req ListStockItemsRequest) ([]StockItemResponse, int64, error) {
	filter := inventory.StockItemFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
		LowStock: req.LowStock,
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = toStockItemResponse(&items[i])
	}
	return responses, total, nil
}
