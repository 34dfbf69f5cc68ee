package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
)

// NotificationService handles per-user notifications and admin broadcasts
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Send fans a notification out to the requested targets. Users matched by
// more than one target receive a single copy.
func (s *NotificationService) Send(ctx context.Context, req *dto.SendNotificationRequest) (int, error) {
	targets := make(map[int64]bool)

	for _, id := range req.UserIDs {
		targets[id] = true
	}
	if req.RoleType != "" {
		ids, err := s.userRepo.ListIDsByRole(ctx, models.RoleType(req.RoleType))
		if err != nil {
			return 0, err
		}
		for _, id := range ids {
			targets[id] = true
		}
	}
	if req.All {
		ids, err := s.userRepo.ListActiveIDs(ctx)
		if err != nil {
			return 0, err
		}
		for _, id := range ids {
			targets[id] = true
		}
	}

	if len(targets) == 0 {
		return 0, apperrors.NewBadRequestError("no notification targets given")
	}

	level := models.NotificationInfo
	if req.Level != "" {
		level = models.NotificationLevel(req.Level)
	}

	userIDs := make([]int64, 0, len(targets))
	for id := range targets {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	created, err := s.notificationRepo.CreateBulk(ctx, userIDs, req.Title, req.Message, level)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("recipients", created).Str("title", req.Title).Msg("Notifications sent")
	return created, nil
}

// Notify creates a single notification for one user. Used by the other
// services and the worker jobs.
func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message string, level models.NotificationLevel) error {
	return s.notificationRepo.Create(ctx, &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Level:   level,
	})
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID int64, filter *dto.NotificationFilterRequest) ([]*models.Notification, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, filter.UnreadOnly, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return notifications, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// CountUnread counts the user's unread notifications
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}
