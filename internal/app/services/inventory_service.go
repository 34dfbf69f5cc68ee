package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// InventoryService handles stock items and their movements
type InventoryService struct {
	stockRepo *repositories.StockRepository
	logger    zerolog.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(stockRepo *repositories.StockRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

// CreateItem registers a stock item. Quantity starts at zero and only
// changes through transactions.
func (s *InventoryService) CreateItem(ctx context.Context, req *dto.CreateStockItemRequest) (*models.StockItem, error) {
	item := &models.StockItem{
		Name:          req.Name,
		Description:   req.Description,
		UnitOfMeasure: req.UnitOfMeasure,
		ReorderLevel:  req.ReorderLevel,
	}
	if err := s.stockRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a stock item by ID
func (s *InventoryService) GetItem(ctx context.Context, id int64) (*models.StockItem, error) {
	return s.stockRepo.GetItemByID(ctx, id)
}

// UpdateItem applies the non-nil fields of the request. The quantity on
// hand cannot be set directly.
func (s *InventoryService) UpdateItem(ctx context.Context, id int64, req *dto.UpdateStockItemRequest) (*models.StockItem, error) {
	item, err := s.stockRepo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.UnitOfMeasure != nil {
		item.UnitOfMeasure = *req.UnitOfMeasure
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}

	if err := s.stockRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a stock item and its movement history
func (s *InventoryService) DeleteItem(ctx context.Context, id int64) error {
	return s.stockRepo.DeleteItem(ctx, id)
}

// ListItems returns all stock items
func (s *InventoryService) ListItems(ctx context.Context) ([]*models.StockItem, error) {
	return s.stockRepo.ListItems(ctx)
}

// ListLowStockItems returns items at or below their reorder level
func (s *InventoryService) ListLowStockItems(ctx context.Context) ([]*models.StockItem, error) {
	return s.stockRepo.ListItemsBelowReorderLevel(ctx)
}

// RecordTransaction logs a stock movement and adjusts the item quantity.
// Consuming more than is on hand is rejected.
func (s *InventoryService) RecordTransaction(ctx context.Context, itemID, userID int64, req *dto.CreateStockTransactionRequest) (*models.StockTransaction, error) {
	if req.QuantityChanged == 0 {
		return nil, apperrors.NewBadRequestError("quantity change cannot be zero")
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	txn := &models.StockTransaction{
		ItemID:          itemID,
		Date:            date,
		QuantityChanged: req.QuantityChanged,
		Reason:          req.Reason,
		UserID:          &userID,
	}
	if err := s.stockRepo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	item, err := s.stockRepo.GetItemByID(ctx, itemID)
	if err == nil && item.NeedsReorder() {
		s.logger.Warn().Int64("itemID", itemID).Str("name", item.Name).
			Float64("onHand", item.QuantityOnHand).Msg("Stock item at or below reorder level")
	}
	return txn, nil
}

// DeleteTransaction removes a movement and reverses its quantity effect
func (s *InventoryService) DeleteTransaction(ctx context.Context, id int64) error {
	return s.stockRepo.DeleteTransaction(ctx, id)
}

// ListItemTransactions returns an item's movement history
func (s *InventoryService) ListItemTransactions(ctx context.Context, itemID int64) ([]*models.StockTransaction, error) {
	if _, err := s.stockRepo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListTransactionsByItem(ctx, itemID)
}
