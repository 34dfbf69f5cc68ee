package dto

import "time"

// CreateStockItemRequest is the body for POST /stock/items
type CreateStockItemRequest struct {
	Name          string  `json:"name" binding:"required" example:"Cotton fabric"`
	Description   string  `json:"description,omitempty"`
	UnitOfMeasure string  `json:"unitOfMeasure" binding:"required" example:"meters"`
	ReorderLevel  float64 `json:"reorderLevel" binding:"gte=0" example:"25"`
}

// UpdateStockItemRequest is the body for PUT /stock/items/:id
type UpdateStockItemRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	UnitOfMeasure *string  `json:"unitOfMeasure,omitempty"`
	ReorderLevel  *float64 `json:"reorderLevel,omitempty" binding:"omitempty,gte=0"`
}

// CreateStockTransactionRequest is the body for POST /stock/items/:id/transactions.
// Positive quantities add stock, negative quantities consume it.
type CreateStockTransactionRequest struct {
	Date            *time.Time `json:"date,omitempty"`
	QuantityChanged float64    `json:"quantityChanged" binding:"required" example:"-3.5"`
	Reason          string     `json:"reason,omitempty" example:"batch TLR101-M1 practice session"`
}
