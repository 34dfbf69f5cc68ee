package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/logger"
)

// AuthorizationService answers ownership and role questions for the
// controllers, on top of the claims the JWT middleware extracted.
type AuthorizationService struct {
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
	batchRepo   *repositories.BatchRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	batchRepo *repositories.BatchRepository,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		batchRepo:   batchRepo,
	}
}

// IsStaff checks if the user holds a back-office role
func (s *AuthorizationService) IsStaff(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsStaff")
		return false, err
	}
	return user.RoleType.IsStaff(), nil
}

// ValidateStaff validates that the user holds a back-office role
func (s *AuthorizationService) ValidateStaff(ctx context.Context, userID int64) error {
	isStaff, err := s.IsStaff(ctx, userID)
	if err != nil {
		return err
	}
	if !isStaff {
		return apperrors.NewForbiddenError("only staff can perform this action")
	}
	return nil
}

// CanAccessStudent checks whether the user may read a student's records.
// Staff see every student; a student only sees their own record.
func (s *AuthorizationService) CanAccessStudent(ctx context.Context, studentID, userID int64) (bool, error) {
	isStaff, err := s.IsStaff(ctx, userID)
	if err != nil {
		return false, err
	}
	if isStaff {
		return true, nil
	}

	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return false, err
	}
	return student.UserID == userID, nil
}

// ValidateStudentAccess validates student record access or returns an error
func (s *AuthorizationService) ValidateStudentAccess(ctx context.Context, studentID, userID int64) error {
	canAccess, err := s.CanAccessStudent(ctx, studentID, userID)
	if err != nil {
		return err
	}
	if !canAccess {
		return apperrors.NewForbiddenError("you don't have permission to access this student's records")
	}
	return nil
}

// IsTrainerOfBatch checks if the user is the trainer assigned to the batch
func (s *AuthorizationService) IsTrainerOfBatch(ctx context.Context, batchID, userID int64) (bool, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return false, err
	}
	if batch.TrainerID == nil {
		return false, nil
	}

	trainer, err := s.courseRepo.GetTrainerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTrainerNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting trainer by user ID")
		return false, fmt.Errorf("failed to check batch trainer: %w", err)
	}
	return *batch.TrainerID == trainer.ID, nil
}

// ValidateBatchAccess validates that the user may manage a batch's
// day-to-day records. Staff always may; trainers only for their own batches.
func (s *AuthorizationService) ValidateBatchAccess(ctx context.Context, batchID, userID int64) error {
	isStaff, err := s.IsStaff(ctx, userID)
	if err != nil {
		return err
	}
	if isStaff {
		return nil
	}

	isTrainer, err := s.IsTrainerOfBatch(ctx, batchID, userID)
	if err != nil {
		return err
	}
	if !isTrainer {
		return apperrors.NewForbiddenError("only the assigned trainer or staff can manage this batch")
	}
	return nil
}

// GetUserInfo returns user information
func (s *AuthorizationService) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in GetUserInfo")
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	return user, nil
}
