package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// InventoryController handles stock items and their transaction ledger
type InventoryController struct {
	inventoryService *services.InventoryService
	logger           zerolog.Logger
}

// NewInventoryController creates a new InventoryController
func NewInventoryController(inventoryService *services.InventoryService, logger zerolog.Logger) *InventoryController {
	return &InventoryController{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// CreateItem adds a stock item. Quantity starts at zero and only moves
// through transactions.
// @Summary Create stock item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body dto.CreateStockItemRequest true "Item details"
// @Success 201 {object} dto.APIResponse{data=models.StockItem} "Item created"
// @Security BearerAuth
// @Router /stock/items [post]
func (c *InventoryController) CreateItem(ctx *gin.Context) {
	var req dto.CreateStockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	item, err := c.inventoryService.CreateItem(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// GetItem returns one stock item
// @Summary Get stock item
// @Tags inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=models.StockItem} "Item"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Security BearerAuth
// @Router /stock/items/{id} [get]
func (c *InventoryController) GetItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.inventoryService.GetItem(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// UpdateItem updates a stock item's descriptive fields
// @Summary Update stock item
// @Description Quantity on hand cannot be set directly; record a transaction instead.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body dto.UpdateStockItemRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.StockItem} "Updated item"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Security BearerAuth
// @Router /stock/items/{id} [put]
func (c *InventoryController) UpdateItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	item, err := c.inventoryService.UpdateItem(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// DeleteItem removes a stock item
// @Summary Delete stock item
// @Tags inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse "Item deleted"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Security BearerAuth
// @Router /stock/items/{id} [delete]
func (c *InventoryController) DeleteItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.inventoryService.DeleteItem(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Stock item deleted"}))
}

// ListItems lists all stock items
// @Summary List stock items
// @Tags inventory
// @Produce json
// @Param lowStock query bool false "Only items at or below their reorder level"
// @Success 200 {object} dto.APIResponse{data=[]models.StockItem} "Items"
// @Security BearerAuth
// @Router /stock/items [get]
func (c *InventoryController) ListItems(ctx *gin.Context) {
	if ctx.Query("lowStock") == "true" {
		lowStock, err := c.inventoryService.ListLowStockItems(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lowStock))
		return
	}

	all, err := c.inventoryService.ListItems(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(all))
}

// RecordTransaction records a stock movement for an item
// @Summary Record stock transaction
// @Description Positive quantities add stock, negative ones consume it. Consuming below zero fails.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body dto.CreateStockTransactionRequest true "Movement details"
// @Success 201 {object} dto.APIResponse{data=models.StockTransaction} "Transaction recorded"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Failure 409 {object} dto.APIResponse "Insufficient stock"
// @Security BearerAuth
// @Router /stock/items/{id}/transactions [post]
func (c *InventoryController) RecordTransaction(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateStockTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	txn, err := c.inventoryService.RecordTransaction(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("itemID", id).Msg("Failed to record stock transaction")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(txn))
}

// DeleteTransaction removes a stock transaction and reverses its effect
// @Summary Delete stock transaction
// @Tags inventory
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.APIResponse "Transaction deleted"
// @Failure 404 {object} dto.APIResponse "Transaction not found"
// @Security BearerAuth
// @Router /stock/transactions/{id} [delete]
func (c *InventoryController) DeleteTransaction(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.inventoryService.DeleteTransaction(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Stock transaction deleted"}))
}

// ListTransactions returns an item's movement ledger, newest first
// @Summary List item transactions
// @Tags inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=[]models.StockTransaction} "Transactions"
// @Failure 404 {object} dto.APIResponse "Item not found"
// @Security BearerAuth
// @Router /stock/items/{id}/transactions [get]
func (c *InventoryController) ListTransactions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	transactions, err := c.inventoryService.ListItemTransactions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(transactions))
}
