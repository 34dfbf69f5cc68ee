package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
)

// BatchService handles batch scheduling and enrollments
type BatchService struct {
	batchRepo   *repositories.BatchRepository
	courseRepo  *repositories.CourseRepository
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(
	batchRepo *repositories.BatchRepository,
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
	logger zerolog.Logger,
) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// CreateBatch schedules a new batch of a course. When no end date is
// given it is derived from the course duration.
func (s *BatchService) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	if req.TrainerID != nil {
		if _, err := s.courseRepo.GetTrainerByID(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	endDate := req.StartDate.AddDate(0, 0, course.DurationWeeks*7)
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if endDate.Before(req.StartDate) {
		return nil, apperrors.NewBadRequestError("batch end date cannot precede its start date")
	}

	batch := &models.Batch{
		CourseID:  req.CourseID,
		TrainerID: req.TrainerID,
		Code:      req.Code,
		StartDate: req.StartDate,
		EndDate:   endDate,
		Capacity:  req.Capacity,
		Schedule:  req.Schedule,
	}
	if err := s.batchRepo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("batchID", batch.ID).Str("code", batch.Code).Msg("Batch created")
	return s.buildBatchResponse(ctx, batch, course)
}

// GetBatch retrieves a batch with its occupancy info
func (s *BatchService) GetBatch(ctx context.Context, id int64) (*dto.BatchResponse, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildBatchResponse(ctx, batch, nil)
}

// UpdateBatch applies the non-nil fields of the request
func (s *BatchService) UpdateBatch(ctx context.Context, id int64, req *dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TrainerID != nil {
		if _, err := s.courseRepo.GetTrainerByID(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
		batch.TrainerID = req.TrainerID
	}
	if req.StartDate != nil {
		batch.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		batch.EndDate = *req.EndDate
	}
	if batch.EndDate.Before(batch.StartDate) {
		return nil, apperrors.NewBadRequestError("batch end date cannot precede its start date")
	}
	if req.Capacity != nil {
		batch.Capacity = *req.Capacity
	}
	if req.Schedule != nil {
		batch.Schedule = req.Schedule
	}

	if err := s.batchRepo.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return s.buildBatchResponse(ctx, batch, nil)
}

// DeleteBatch removes a batch
func (s *BatchService) DeleteBatch(ctx context.Context, id int64) error {
	return s.batchRepo.DeleteBatch(ctx, id)
}

// ListBatches retrieves batches matching the filter
func (s *BatchService) ListBatches(ctx context.Context, filter *dto.BatchFilterRequest) ([]dto.BatchResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	batches, total, err := s.batchRepo.ListBatches(ctx, filter.CourseID, filter.TrainerID, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.BatchResponse, 0, len(batches))
	for _, batch := range batches {
		resp, err := s.buildBatchResponse(ctx, batch, nil)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		responses = append(responses, *resp)
	}
	return responses, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// EnrollStudent adds a student to a batch, enforcing its capacity
func (s *BatchService) EnrollStudent(ctx context.Context, batchID int64, req *dto.EnrollStudentRequest) (*models.Enrollment, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetStudentByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	enrolled, err := s.batchRepo.CountActiveEnrollments(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if enrolled >= batch.Capacity {
		return nil, apperrors.ErrBatchFull
	}

	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		BatchID:    batchID,
		EnrolledOn: time.Now(),
		Status:     models.EnrollmentActive,
	}
	if err := s.batchRepo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("batchID", batchID).Int64("studentID", req.StudentID).Msg("Student enrolled")
	return enrollment, nil
}

// UpdateEnrollment moves an enrollment through its lifecycle. Re-enrolling
// a dropped student must still fit in the batch.
func (s *BatchService) UpdateEnrollment(ctx context.Context, id int64, req *dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	enrollment, err := s.batchRepo.GetEnrollmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := models.EnrollmentStatus(req.Status)
	if enrollment.Status == models.EnrollmentDropped && status != models.EnrollmentDropped {
		batch, err := s.batchRepo.GetBatchByID(ctx, enrollment.BatchID)
		if err != nil {
			return nil, err
		}
		enrolled, err := s.batchRepo.CountActiveEnrollments(ctx, enrollment.BatchID)
		if err != nil {
			return nil, err
		}
		if enrolled >= batch.Capacity {
			return nil, apperrors.ErrBatchFull
		}
	}

	if err := s.batchRepo.UpdateEnrollmentStatus(ctx, id, status); err != nil {
		return nil, err
	}
	enrollment.Status = status
	return enrollment, nil
}

// ListBatchEnrollments returns all enrollments in a batch
func (s *BatchService) ListBatchEnrollments(ctx context.Context, batchID int64) ([]*models.Enrollment, error) {
	if _, err := s.batchRepo.GetBatchByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.batchRepo.ListEnrollmentsByBatch(ctx, batchID)
}

// ListStudentEnrollments returns a student's enrollment history
func (s *BatchService) ListStudentEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.batchRepo.ListEnrollmentsByStudent(ctx, studentID)
}

// buildBatchResponse fills the derived occupancy fields. The course may
// be passed in when the caller already has it loaded.
func (s *BatchService) buildBatchResponse(ctx context.Context, batch *models.Batch, course *models.Course) (*dto.BatchResponse, error) {
	if course == nil {
		var err error
		course, err = s.courseRepo.GetCourseByID(ctx, batch.CourseID)
		if err != nil {
			return nil, err
		}
	}

	enrolled, err := s.batchRepo.CountActiveEnrollments(ctx, batch.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchResponse{
		ID:            batch.ID,
		Code:          batch.Code,
		CourseID:      batch.CourseID,
		CourseTitle:   course.Title,
		TrainerID:     batch.TrainerID,
		StartDate:     batch.StartDate,
		EndDate:       batch.EndDate,
		Capacity:      batch.Capacity,
		EnrolledCount: enrolled,
		IsFull:        enrolled >= batch.Capacity,
		Schedule:      batch.Schedule,
	}

	if batch.TrainerID != nil {
		trainer, err := s.courseRepo.GetTrainerByID(ctx, *batch.TrainerID)
		if err == nil && trainer.User != nil {
			resp.TrainerName = trainer.User.FullName()
		}
	}
	return resp, nil
}
