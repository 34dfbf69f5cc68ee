package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// EventRepository handles institute event persistence
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (title, description, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.Title, e.Description, e.StartDate, e.EndDate, e.CreatedByID).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	e := &models.Event{}
	err := r.db.QueryRow(ctx, `
		SELECT id, title, description, start_date, end_date, created_by, created_at
		FROM events WHERE id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
			&e.CreatedByID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return e, nil
}

// Update persists the mutable event fields
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE events SET title = $1, description = $2, start_date = $3, end_date = $4
		WHERE id = $5`,
		e.Title, e.Description, e.StartDate, e.EndDate, e.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// List returns events ordered by start date. When notEndedBefore is
// non-zero, only events with end_date on or after it are returned; staff
// callers pass the zero time to see the full history.
func (r *EventRepository) List(ctx context.Context, notEndedBefore time.Time) ([]*models.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, created_by, created_at
		FROM events`
	args := []interface{}{}
	if !notEndedBefore.IsZero() {
		query += ` WHERE end_date >= $1`
		args = append(args, notEndedBefore)
	}
	query += ` ORDER BY start_date, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e := &models.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
			&e.CreatedByID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
