package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/filestorage"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
	"github.com/tailorwise/tailorwise/internal/pkg/taskqueue"
)

// CertificateService handles certificate issuance, revocation and the
// public QR verification.
type CertificateService struct {
	certRepo    *repositories.CertificateRepository
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
	batchRepo   *repositories.BatchRepository
	storage     filestorage.FileStorage
	queue       *taskqueue.Queue
	logger      zerolog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certRepo *repositories.CertificateRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	batchRepo *repositories.BatchRepository,
	storage filestorage.FileStorage,
	queue *taskqueue.Queue,
	logger zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		certRepo:    certRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		batchRepo:   batchRepo,
		storage:     storage,
		queue:       queue,
		logger:      logger,
	}
}

// Issue creates a certificate for a student who completed a course. The
// student must not already hold a valid certificate for it. PDF rendering
// happens in the background worker.
func (s *CertificateService) Issue(ctx context.Context, req *dto.IssueCertificateRequest) (*models.Certificate, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetCourseByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	completed, err := s.batchRepo.HasCompletedEnrollment(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, apperrors.ErrCourseNotCompleted
	}

	exists, err := s.certRepo.HasValidCertificate(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCertificateExists
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	seq, err := s.certRepo.NextSequenceForDay(ctx, issueDate)
	if err != nil {
		return nil, err
	}

	courseID := req.CourseID
	cert := &models.Certificate{
		CertificateNo: models.FormatCertificateNo(issueDate, seq),
		StudentID:     req.StudentID,
		CourseID:      &courseID,
		IssueDate:     issueDate,
		QRHash:        uuid.New().String(),
		Remarks:       req.Remarks,
	}
	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("certificateID", cert.ID).Str("certificateNo", cert.CertificateNo).
		Int64("studentID", cert.StudentID).Msg("Certificate issued")

	s.enqueuePDF(ctx, cert.ID)
	return s.certRepo.GetByID(ctx, cert.ID)
}

// Get retrieves a certificate by ID
func (s *CertificateService) Get(ctx context.Context, id int64) (*models.Certificate, error) {
	return s.certRepo.GetByID(ctx, id)
}

// List retrieves certificates matching the filter
func (s *CertificateService) List(ctx context.Context, filter *dto.CertificateFilterRequest) ([]*models.Certificate, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	certs, total, err := s.certRepo.List(ctx, filter.StudentID, filter.CourseID, filter.Revoked, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return certs, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// Mine lists the calling student's non-revoked certificates
func (s *CertificateService) Mine(ctx context.Context, userID int64) ([]*models.Certificate, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	revoked := false
	certs, _, err := s.certRepo.List(ctx, &student.ID, nil, &revoked, 0, helpers.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return certs, nil
}

// Revoke invalidates a certificate. The public verification endpoint
// treats revoked certificates as not found.
func (s *CertificateService) Revoke(ctx context.Context, id int64) (*models.Certificate, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert.Revoked {
		return nil, apperrors.ErrCertificateRevoked
	}
	if err := s.certRepo.SetRevoked(ctx, id, true); err != nil {
		return nil, err
	}
	cert.Revoked = true

	s.logger.Info().Int64("certificateID", id).Str("certificateNo", cert.CertificateNo).
		Msg("Certificate revoked")
	return cert, nil
}

// Reinstate clears a certificate's revoked flag
func (s *CertificateService) Reinstate(ctx context.Context, id int64) (*models.Certificate, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cert.Revoked {
		return cert, nil
	}
	if err := s.certRepo.SetRevoked(ctx, id, false); err != nil {
		return nil, err
	}
	cert.Revoked = false
	return cert, nil
}

// VerifyByQRHash resolves a certificate for the public verification page.
// Unknown hashes and revoked certificates both come back as not found, so
// a revoked certificate is indistinguishable from a fake one.
func (s *CertificateService) VerifyByQRHash(ctx context.Context, qrHash string) (*dto.CertificateVerificationResponse, error) {
	cert, err := s.certRepo.GetByQRHash(ctx, qrHash)
	if err != nil {
		return nil, err
	}
	if cert.Revoked {
		return nil, apperrors.ErrCertificateNotFound
	}

	resp := &dto.CertificateVerificationResponse{
		CertificateNo: cert.CertificateNo,
		IssueDate:     cert.IssueDate,
		Valid:         true,
	}
	if cert.Student != nil {
		resp.RegNo = cert.Student.RegNo
		if cert.Student.User != nil {
			resp.StudentName = cert.Student.User.FullName()
		}
	}
	if cert.Course != nil {
		resp.CourseName = cert.Course.Title
	}
	return resp, nil
}

// PDFPath returns the filesystem location of the rendered PDF for
// download, queueing a render when none exists yet.
func (s *CertificateService) PDFPath(ctx context.Context, id int64) (string, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if cert.PDFPath == nil || *cert.PDFPath == "" {
		s.enqueuePDF(ctx, id)
		return "", apperrors.NewResourceNotFoundError("certificate PDF is not ready yet")
	}
	return s.storage.GetFullPath(*cert.PDFPath), nil
}

func (s *CertificateService) enqueuePDF(ctx context.Context, certificateID int64) {
	if s.queue == nil {
		return
	}
	payload := taskqueue.CertificatePDFPayload{CertificateID: certificateID}
	if _, err := s.queue.Enqueue(ctx, taskqueue.KindCertificatePDF, payload); err != nil {
		s.logger.Warn().Err(err).Int64("certificateID", certificateID).
			Msg("Failed to enqueue certificate PDF task")
	}
}
