package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/auth"
	"github.com/tailorwise/tailorwise/internal/pkg/filestorage"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
)

// StudentService handles the enquiry pipeline, student admission and
// student records.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	batchRepo   *repositories.BatchRepository
	userRepo    *repositories.UserRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	batchRepo *repositories.BatchRepository,
	userRepo *repositories.UserRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		batchRepo:   batchRepo,
		userRepo:    userRepo,
		storage:     storage,
		logger:      logger,
	}
}

// CreateEnquiry records a new enquiry with status "new"
func (s *StudentService) CreateEnquiry(ctx context.Context, req *dto.CreateEnquiryRequest) (*models.Enquiry, error) {
	enquiry := &models.Enquiry{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		CourseInterest: req.CourseInterest,
		Source:         req.Source,
		Status:         models.EnquiryNew,
		Notes:          req.Notes,
	}
	if err := s.studentRepo.CreateEnquiry(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// GetEnquiry retrieves an enquiry by ID
func (s *StudentService) GetEnquiry(ctx context.Context, id int64) (*models.Enquiry, error) {
	return s.studentRepo.GetEnquiryByID(ctx, id)
}

// UpdateEnquiry applies the non-nil fields of the request. Converted
// enquiries are immutable.
func (s *StudentService) UpdateEnquiry(ctx context.Context, id int64, req *dto.UpdateEnquiryRequest) (*models.Enquiry, error) {
	enquiry, err := s.studentRepo.GetEnquiryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enquiry.Status == models.EnquiryConverted {
		return nil, apperrors.ErrEnquiryAlreadyConverted
	}

	if req.Name != nil {
		enquiry.Name = *req.Name
	}
	if req.Phone != nil {
		enquiry.Phone = *req.Phone
	}
	if req.Email != nil {
		enquiry.Email = *req.Email
	}
	if req.CourseInterest != nil {
		enquiry.CourseInterest = *req.CourseInterest
	}
	if req.Source != nil {
		enquiry.Source = *req.Source
	}
	if req.Notes != nil {
		enquiry.Notes = *req.Notes
	}
	if req.Status != nil {
		// Conversion happens through ConvertEnquiry, not a status edit
		if models.EnquiryStatus(*req.Status) == models.EnquiryConverted {
			return nil, apperrors.NewBadRequestError("use the convert operation to convert an enquiry")
		}
		enquiry.Status = models.EnquiryStatus(*req.Status)
	}

	if err := s.studentRepo.UpdateEnquiry(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// DeleteEnquiry removes an enquiry
func (s *StudentService) DeleteEnquiry(ctx context.Context, id int64) error {
	return s.studentRepo.DeleteEnquiry(ctx, id)
}

// ListEnquiries retrieves enquiries matching the filter
func (s *StudentService) ListEnquiries(ctx context.Context, filter *dto.EnquiryFilterRequest) ([]*models.Enquiry, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	enquiries, total, err := s.studentRepo.ListEnquiries(ctx, filter.Status, filter.Search, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return enquiries, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// ConvertEnquiry admits the enquired person as a student: it creates the
// user account and student record, marks the enquiry converted and
// optionally enrolls the student in a batch.
func (s *StudentService) ConvertEnquiry(ctx context.Context, enquiryID int64, req *dto.ConvertEnquiryRequest) (*models.Student, error) {
	enquiry, err := s.studentRepo.GetEnquiryByID(ctx, enquiryID)
	if err != nil {
		return nil, err
	}
	if enquiry.Status == models.EnquiryConverted {
		return nil, apperrors.ErrEnquiryAlreadyConverted
	}

	email := req.Email
	if email == "" {
		email = enquiry.Email
	}

	student, err := s.admitStudent(ctx, admission{
		Username:      req.Username,
		Password:      req.Password,
		Email:         email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         enquiry.Phone,
		Address:       req.Address,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		AdmissionDate: req.AdmissionDate,
		BatchID:       req.BatchID,
	})
	if err != nil {
		return nil, err
	}

	enquiry.Status = models.EnquiryConverted
	if err := s.studentRepo.UpdateEnquiry(ctx, enquiry); err != nil {
		s.logger.Error().Err(err).Int64("enquiryID", enquiryID).Msg("Failed to mark enquiry converted")
	}

	return student, nil
}

// CreateStudent admits a student directly, without an enquiry
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	return s.admitStudent(ctx, admission{
		Username:      req.Username,
		Password:      req.Password,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Address:       req.Address,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		AdmissionDate: req.AdmissionDate,
		BatchID:       req.BatchID,
	})
}

type admission struct {
	Username      string
	Password      string
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	Address       string
	GuardianName  string
	GuardianPhone string
	AdmissionDate *time.Time
	BatchID       *int64
}

func (s *StudentService) admitStudent(ctx context.Context, a admission) (*models.Student, error) {
	if err := ValidatePassword(a.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(a.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admissionDate := time.Now()
	if a.AdmissionDate != nil {
		admissionDate = *a.AdmissionDate
	}

	seq, err := s.studentRepo.NextRegNoSequence(ctx, admissionDate.Year())
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  a.Username,
		Email:     a.Email,
		Password:  hashed,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		Address:   a.Address,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}
	student := &models.Student{
		RegNo:         models.FormatRegNo(admissionDate.Year(), seq),
		GuardianName:  a.GuardianName,
		GuardianPhone: a.GuardianPhone,
		AdmissionDate: admissionDate,
		Address:       a.Address,
		Active:        true,
	}

	if err := s.studentRepo.CreateStudentWithUser(ctx, user, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("regNo", student.RegNo).Msg("Student admitted")

	if a.BatchID != nil {
		enrollment := &models.Enrollment{
			StudentID:  student.ID,
			BatchID:    *a.BatchID,
			EnrolledOn: admissionDate,
			Status:     models.EnrollmentActive,
		}
		if err := s.batchRepo.CreateEnrollment(ctx, enrollment); err != nil {
			// Admission stands even if the initial enrollment fails
			s.logger.Error().Err(err).Int64("studentID", student.ID).Int64("batchID", *a.BatchID).
				Msg("Failed to enroll newly admitted student")
		}
	}

	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}

// GetStudentByUserID retrieves the student record behind a user account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByUserID(ctx, userID)
}

// UpdateStudent applies the non-nil staff-editable fields
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	userChanged := false
	if req.Email != nil {
		student.User.Email = *req.Email
		userChanged = true
	}
	if req.FirstName != nil {
		student.User.FirstName = *req.FirstName
		userChanged = true
	}
	if req.LastName != nil {
		student.User.LastName = *req.LastName
		userChanged = true
	}
	if req.Phone != nil {
		student.User.Phone = *req.Phone
		userChanged = true
	}
	if req.Address != nil {
		student.Address = *req.Address
		student.User.Address = *req.Address
		userChanged = true
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = *req.GuardianPhone
	}
	if req.Active != nil {
		student.Active = *req.Active
		student.User.IsActive = *req.Active
		userChanged = true
	}

	if userChanged && student.User != nil {
		if err := s.userRepo.Update(ctx, student.User); err != nil {
			return nil, err
		}
	}
	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudentProfile lets a student update their own contact details
func (s *StudentService) UpdateStudentProfile(ctx context.Context, userID int64, req *dto.UpdateStudentProfileRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := &dto.UpdateStudentRequest{
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	}
	return s.UpdateStudent(ctx, student.ID, update)
}

// ListStudents retrieves students matching the filter
func (s *StudentService) ListStudents(ctx context.Context, filter *dto.StudentFilterRequest) (*dto.StudentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	students, total, err := s.studentRepo.ListStudents(ctx, filter.BatchID, filter.Active, filter.Search, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}

	return &dto.StudentListResponse{
		Students:   responses,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// UploadStudentPhoto stores a student's photo and records its path
func (s *StudentService) UploadStudentPhoto(ctx context.Context, studentID int64, fileHeader *multipart.FileHeader) (string, error) {
	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return "", err
	}

	path, err := s.storage.SaveFileWithPath(fileHeader, "photos")
	if err != nil {
		return "", err
	}

	if student.PhotoURL != nil {
		if err := s.storage.DeleteFile(*student.PhotoURL); err != nil {
			s.logger.Warn().Err(err).Str("path", *student.PhotoURL).Msg("Failed to delete previous photo")
		}
	}

	if err := s.studentRepo.UpdateStudentPhoto(ctx, studentID, &path); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteStudent removes a student and their login account. Students with
// posted receipts cannot be removed while the financial record stands.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.studentRepo.DeleteStudent(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Str("regNo", student.RegNo).Msg("Student deleted")
	return nil
}

// AddMeasurement records a new dated measurement for a student
func (s *StudentService) AddMeasurement(ctx context.Context, studentID int64, req *dto.MeasurementRequest) (*models.StudentMeasurement, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	m := &models.StudentMeasurement{
		StudentID:    studentID,
		Neck:         req.Neck,
		Chest:        req.Chest,
		Waist:        req.Waist,
		Hips:         req.Hips,
		SleeveLength: req.SleeveLength,
		Inseam:       req.Inseam,
		Notes:        req.Notes,
	}
	m.DateTaken = time.Now()
	if req.DateTaken != nil {
		m.DateTaken = *req.DateTaken
	}

	if err := s.studentRepo.CreateMeasurement(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMeasurements returns a student's measurement history, newest first
func (s *StudentService) ListMeasurements(ctx context.Context, studentID int64) ([]*models.StudentMeasurement, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListMeasurements(ctx, studentID)
}

// GetMeasurement retrieves one measurement record
func (s *StudentService) GetMeasurement(ctx context.Context, id int64) (*models.StudentMeasurement, error) {
	return s.studentRepo.GetMeasurementByID(ctx, id)
}

// UpdateMeasurement applies the non-nil fields of the request
func (s *StudentService) UpdateMeasurement(ctx context.Context, id int64, req *dto.UpdateMeasurementRequest) (*models.StudentMeasurement, error) {
	m, err := s.studentRepo.GetMeasurementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DateTaken != nil {
		m.DateTaken = *req.DateTaken
	}
	if req.Neck != nil {
		m.Neck = req.Neck
	}
	if req.Chest != nil {
		m.Chest = req.Chest
	}
	if req.Waist != nil {
		m.Waist = req.Waist
	}
	if req.Hips != nil {
		m.Hips = req.Hips
	}
	if req.SleeveLength != nil {
		m.SleeveLength = req.SleeveLength
	}
	if req.Inseam != nil {
		m.Inseam = req.Inseam
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}

	if err := s.studentRepo.UpdateMeasurement(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMeasurement removes a measurement record
func (s *StudentService) DeleteMeasurement(ctx context.Context, id int64) error {
	return s.studentRepo.DeleteMeasurement(ctx, id)
}
