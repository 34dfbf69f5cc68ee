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

// EventService handles institute events and announcements
type EventService struct {
	eventRepo *repositories.EventRepository
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo *repositories.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// resolveEventEnd normalizes an event's end date: single-day events omit
// it and get the start date back. An end before the start is rejected.
func resolveEventEnd(start time.Time, end *time.Time) (time.Time, error) {
	resolved := start
	if end != nil {
		resolved = *end
	}
	if resolved.Before(start) {
		return time.Time{}, apperrors.NewBadRequestError("event end date cannot precede its start date")
	}
	return resolved, nil
}

// Create adds an event. Single-day events may omit the end date.
func (s *EventService) Create(ctx context.Context, createdByUserID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	endDate, err := resolveEventEnd(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     endDate,
		CreatedByID: &createdByUserID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Get retrieves an event by ID
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// Update applies the non-nil fields of the request
func (s *EventService) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if _, err := resolveEventEnd(event.StartDate, &event.EndDate); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.eventRepo.Delete(ctx, id)
}

// List returns events. Staff see the full history; everyone else only
// sees events that have not yet ended.
func (s *EventService) List(ctx context.Context, roleType models.RoleType) ([]*models.Event, error) {
	cutoff := time.Time{}
	if !roleType.IsStaff() {
		now := time.Now()
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return s.eventRepo.List(ctx, cutoff)
}
