package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/auth"
)

// CourseService handles the course catalog and trainer management
type CourseService struct {
	courseRepo *repositories.CourseRepository
	userRepo   *repositories.UserRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo *repositories.CourseRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreateCourse adds a course to the catalog
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:                   req.Code,
		Title:                  req.Title,
		DurationWeeks:          req.DurationWeeks,
		TotalFees:              req.TotalFees,
		RequiredAttendanceDays: req.RequiredAttendanceDays,
		Syllabus:               req.Syllabus,
		Active:                 true,
	}
	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetCourse retrieves a course by ID
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetCourseByID(ctx, id)
}

// UpdateCourse applies the non-nil fields of the request. The course code
// is immutable once assigned.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = *req.DurationWeeks
	}
	if req.TotalFees != nil {
		course.TotalFees = *req.TotalFees
	}
	if req.RequiredAttendanceDays != nil {
		course.RequiredAttendanceDays = *req.RequiredAttendanceDays
	}
	if req.Syllabus != nil {
		course.Syllabus = *req.Syllabus
	}
	if req.Active != nil {
		course.Active = *req.Active
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course from the catalog
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.DeleteCourse(ctx, id)
}

// ListCourses returns the catalog, optionally restricted to active courses
func (s *CourseService) ListCourses(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	return s.courseRepo.ListCourses(ctx, activeOnly)
}

// CreateTrainer creates a trainer together with their user account
func (s *CourseService) CreateTrainer(ctx context.Context, req *dto.CreateTrainerRequest) (*models.Trainer, error) {
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	joinDate := time.Now()
	if req.JoinDate != nil {
		joinDate = *req.JoinDate
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleType:  models.RoleTrainer,
		IsActive:  true,
	}
	trainer := &models.Trainer{
		EmpNo:    req.EmpNo,
		JoinDate: joinDate,
		Salary:   req.Salary,
		IsActive: true,
	}

	if err := s.courseRepo.CreateTrainerWithUser(ctx, user, trainer); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("trainerID", trainer.ID).Str("empNo", trainer.EmpNo).Msg("Trainer created")
	return trainer, nil
}

// GetTrainer retrieves a trainer by ID
func (s *CourseService) GetTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	return s.courseRepo.GetTrainerByID(ctx, id)
}

// GetTrainerByUserID retrieves the trainer record behind a user account
func (s *CourseService) GetTrainerByUserID(ctx context.Context, userID int64) (*models.Trainer, error) {
	return s.courseRepo.GetTrainerByUserID(ctx, userID)
}

// UpdateTrainer applies the non-nil fields of the request. Deactivating a
// trainer also deactivates their user account.
func (s *CourseService) UpdateTrainer(ctx context.Context, id int64, req *dto.UpdateTrainerRequest) (*models.Trainer, error) {
	trainer, err := s.courseRepo.GetTrainerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	userChanged := false
	if req.Email != nil {
		trainer.User.Email = *req.Email
		userChanged = true
	}
	if req.FirstName != nil {
		trainer.User.FirstName = *req.FirstName
		userChanged = true
	}
	if req.LastName != nil {
		trainer.User.LastName = *req.LastName
		userChanged = true
	}
	if req.Phone != nil {
		trainer.User.Phone = *req.Phone
		userChanged = true
	}
	if req.Salary != nil {
		trainer.Salary = *req.Salary
	}
	if req.IsActive != nil {
		trainer.IsActive = *req.IsActive
		trainer.User.IsActive = *req.IsActive
		userChanged = true
	}

	if userChanged {
		if err := s.userRepo.Update(ctx, trainer.User); err != nil {
			return nil, err
		}
	}
	if err := s.courseRepo.UpdateTrainer(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// ListTrainers returns all trainers, optionally only active ones
func (s *CourseService) ListTrainers(ctx context.Context, activeOnly bool) ([]*models.Trainer, error) {
	return s.courseRepo.ListTrainers(ctx, activeOnly)
}
