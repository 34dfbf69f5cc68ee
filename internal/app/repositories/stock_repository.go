package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// StockRepository handles inventory items and their transactions
type StockRepository struct {
	db *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{db: db}
}

// CreateItem inserts a new stock item with zero quantity on hand
func (r *StockRepository) CreateItem(ctx context.Context, item *models.StockItem) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO stock_items (name, description, unit_of_measure, quantity_on_hand, reorder_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.Name, item.Description, item.UnitOfMeasure, item.QuantityOnHand,
		item.ReorderLevel).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("error creating stock item: %w", err)
	}
	return nil
}

// GetItemByID retrieves a stock item by ID
func (r *StockRepository) GetItemByID(ctx context.Context, id int64) (*models.StockItem, error) {
	item := &models.StockItem{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, unit_of_measure, quantity_on_hand, reorder_level
		FROM stock_items WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.UnitOfMeasure,
			&item.QuantityOnHand, &item.ReorderLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("error retrieving stock item: %w", err)
	}
	return item, nil
}

// UpdateItem persists the mutable stock item fields
func (r *StockRepository) UpdateItem(ctx context.Context, item *models.StockItem) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE stock_items
		SET name = $1, description = $2, unit_of_measure = $3, reorder_level = $4
		WHERE id = $5`,
		item.Name, item.Description, item.UnitOfMeasure, item.ReorderLevel, item.ID)
	if err != nil {
		return fmt.Errorf("error updating stock item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStockItemNotFound
	}
	return nil
}

// DeleteItem removes a stock item and its transactions
func (r *StockRepository) DeleteItem(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting stock item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStockItemNotFound
	}
	return nil
}

// ListItems returns all stock items ordered by name
func (r *StockRepository) ListItems(ctx context.Context) ([]*models.StockItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, unit_of_measure, quantity_on_hand, reorder_level
		FROM stock_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing stock items: %w", err)
	}
	defer rows.Close()

	var items []*models.StockItem
	for rows.Next() {
		item := &models.StockItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.UnitOfMeasure,
			&item.QuantityOnHand, &item.ReorderLevel); err != nil {
			return nil, fmt.Errorf("error scanning stock item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// applyStockDelta resolves the quantity on hand after a movement. Drawing
// below zero is rejected.
func applyStockDelta(onHand, change float64) (float64, error) {
	next := onHand + change
	if next < 0 {
		return 0, apperrors.ErrInsufficientStock
	}
	return next, nil
}

// CreateTransaction records a stock movement and adjusts the item's
// quantity on hand in one transaction. The row lock prevents concurrent
// movements from over-drawing the item.
func (r *StockRepository) CreateTransaction(ctx context.Context, txn *models.StockTransaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var onHand float64
	err = tx.QueryRow(ctx, `
		SELECT quantity_on_hand FROM stock_items WHERE id = $1 FOR UPDATE`,
		txn.ItemID).Scan(&onHand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStockItemNotFound
		}
		return fmt.Errorf("error locking stock item: %w", err)
	}

	next, err := applyStockDelta(onHand, txn.QuantityChanged)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO stock_transactions (item_id, date, quantity_changed, reason, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		txn.ItemID, txn.Date, txn.QuantityChanged, txn.Reason, txn.UserID).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("error creating stock transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE stock_items SET quantity_on_hand = $1 WHERE id = $2`,
		next, txn.ItemID); err != nil {
		return fmt.Errorf("error adjusting stock quantity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing stock transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a stock movement and reverses its effect on
// the item's quantity on hand.
func (r *StockRepository) DeleteTransaction(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var itemID int64
	var quantityChanged float64
	err = tx.QueryRow(ctx, `
		SELECT item_id, quantity_changed FROM stock_transactions WHERE id = $1`,
		id).Scan(&itemID, &quantityChanged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStockTransactionNotFound
		}
		return fmt.Errorf("error retrieving stock transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM stock_transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting stock transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE stock_items SET quantity_on_hand = quantity_on_hand - $1 WHERE id = $2`,
		quantityChanged, itemID); err != nil {
		return fmt.Errorf("error reversing stock quantity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing stock transaction delete: %w", err)
	}
	return nil
}

// ListTransactionsByItem returns an item's movements, newest first
func (r *StockRepository) ListTransactionsByItem(ctx context.Context, itemID int64) ([]*models.StockTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, item_id, date, quantity_changed, reason, user_id
		FROM stock_transactions WHERE item_id = $1
		ORDER BY date DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("error listing stock transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.StockTransaction
	for rows.Next() {
		txn := &models.StockTransaction{}
		if err := rows.Scan(&txn.ID, &txn.ItemID, &txn.Date, &txn.QuantityChanged,
			&txn.Reason, &txn.UserID); err != nil {
			return nil, fmt.Errorf("error scanning stock transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// ListItemsBelowReorderLevel returns items needing replenishment
func (r *StockRepository) ListItemsBelowReorderLevel(ctx context.Context) ([]*models.StockItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, unit_of_measure, quantity_on_hand, reorder_level
		FROM stock_items
		WHERE quantity_on_hand <= reorder_level
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing low stock items: %w", err)
	}
	defer rows.Close()

	var items []*models.StockItem
	for rows.Next() {
		item := &models.StockItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.UnitOfMeasure,
			&item.QuantityOnHand, &item.ReorderLevel); err != nil {
			return nil, fmt.Errorf("error scanning stock item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
