package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/report"
)

// AttendanceService handles daily attendance sheets and the course
// completion that follows from them.
type AttendanceService struct {
	attendanceRepo   *repositories.AttendanceRepository
	batchRepo        *repositories.BatchRepository
	courseRepo       *repositories.CourseRepository
	studentRepo      *repositories.StudentRepository
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo *repositories.AttendanceRepository,
	batchRepo *repositories.BatchRepository,
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
	notificationRepo *repositories.NotificationRepository,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo:   attendanceRepo,
		batchRepo:        batchRepo,
		courseRepo:       courseRepo,
		studentRepo:      studentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// attendancePercentage is the share of recorded days a student was present
func attendancePercentage(presentDays, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	return float64(presentDays) / float64(totalDays) * 100
}

// meetsAttendanceRequirement reports whether a student's present days
// satisfy the course's completion threshold.
func meetsAttendanceRequirement(presentDays, requiredDays int) bool {
	return presentDays >= requiredDays
}

// RecordAttendance creates the attendance sheet of a batch for one day.
// Every marked student must hold a non-dropped enrollment in the batch.
func (s *AttendanceService) RecordAttendance(ctx context.Context, batchID, takenByUserID int64, req *dto.RecordAttendanceRequest) (*models.Attendance, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	entries, err := s.buildEntries(ctx, batchID, req.Entries)
	if err != nil {
		return nil, err
	}

	sheet := &models.Attendance{
		BatchID:   batchID,
		Date:      req.Date,
		TakenByID: &takenByUserID,
		Remarks:   req.Remarks,
		Entries:   entries,
	}
	if err := s.attendanceRepo.CreateSheet(ctx, sheet); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("batchID", batchID).Time("date", req.Date).
		Int("entries", len(entries)).Msg("Attendance recorded")

	s.completeEligibleEnrollments(ctx, batch, entries)
	return s.attendanceRepo.GetSheetByID(ctx, sheet.ID)
}

// GetSheet retrieves an attendance sheet with its entries
func (s *AttendanceService) GetSheet(ctx context.Context, id int64) (*models.Attendance, error) {
	return s.attendanceRepo.GetSheetByID(ctx, id)
}

// UpdateAttendance replaces the entries of an existing sheet
func (s *AttendanceService) UpdateAttendance(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	sheet, err := s.attendanceRepo.GetSheetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.GetBatchByID(ctx, sheet.BatchID)
	if err != nil {
		return nil, err
	}

	entries, err := s.buildEntries(ctx, sheet.BatchID, req.Entries)
	if err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.ReplaceEntries(ctx, id, entries); err != nil {
		return nil, err
	}

	s.completeEligibleEnrollments(ctx, batch, entries)
	return s.attendanceRepo.GetSheetByID(ctx, id)
}

// DeleteSheet removes an attendance sheet and its entries
func (s *AttendanceService) DeleteSheet(ctx context.Context, id int64) error {
	return s.attendanceRepo.DeleteSheet(ctx, id)
}

// ListBatchAttendance returns the sheets of a batch within a date range
func (s *AttendanceService) ListBatchAttendance(ctx context.Context, batchID int64, filter *dto.AttendanceFilterRequest) ([]*models.Attendance, error) {
	if _, err := s.batchRepo.GetBatchByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListSheetsByBatch(ctx, batchID, filter.From, filter.To)
}

// BatchSummary aggregates per-student attendance for a batch
func (s *AttendanceService) BatchSummary(ctx context.Context, batchID int64) (*dto.BatchAttendanceSummaryResponse, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, batch.CourseID)
	if err != nil {
		return nil, err
	}

	sheetCount, err := s.attendanceRepo.CountSheets(ctx, batchID)
	if err != nil {
		return nil, err
	}
	counts, err := s.attendanceRepo.CountStatusesByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.batchRepo.ListEnrollmentsByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64]*dto.StudentAttendanceSummary, len(enrollments))
	resp := &dto.BatchAttendanceSummaryResponse{
		BatchID:    batchID,
		BatchCode:  batch.Code,
		SheetCount: sheetCount,
	}
	for _, e := range enrollments {
		if e.Status == models.EnrollmentDropped {
			continue
		}
		summary := &dto.StudentAttendanceSummary{
			StudentID:    e.StudentID,
			RequiredDays: course.RequiredAttendanceDays,
		}
		if e.Student != nil {
			summary.RegNo = e.Student.RegNo
			if e.Student.User != nil {
				summary.StudentName = e.Student.User.FullName()
			}
		}
		byStudent[e.StudentID] = summary
	}

	for _, c := range counts {
		summary, ok := byStudent[c.StudentID]
		if !ok {
			continue
		}
		switch c.Status {
		case models.AttendancePresent:
			summary.PresentDays = c.Count
		case models.AttendanceAbsent:
			summary.AbsentDays = c.Count
		case models.AttendanceLeave:
			summary.LeaveDays = c.Count
		}
	}

	for _, summary := range byStudent {
		summary.TotalDays = summary.PresentDays + summary.AbsentDays + summary.LeaveDays
		summary.Percentage = attendancePercentage(summary.PresentDays, summary.TotalDays)
		resp.Students = append(resp.Students, *summary)
	}
	return resp, nil
}

// BatchTimeline returns the day-by-day present percentage for a batch
func (s *AttendanceService) BatchTimeline(ctx context.Context, batchID int64) (*dto.BatchAttendanceTimelineResponse, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	days, err := s.attendanceRepo.CountDailyPresence(ctx, batchID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchAttendanceTimelineResponse{
		BatchID:   batchID,
		BatchCode: batch.Code,
		Days:      make([]dto.AttendanceDayPoint, 0, len(days)),
	}
	for _, d := range days {
		point := dto.AttendanceDayPoint{
			Date:    d.Date,
			Present: d.Present,
			Total:   d.Total,
		}
		point.Percentage = attendancePercentage(d.Present, d.Total)
		resp.Days = append(resp.Days, point)
	}
	return resp, nil
}

// StudentSummary aggregates one student's attendance in one batch
func (s *AttendanceService) StudentSummary(ctx context.Context, studentID, batchID int64) (*dto.StudentAttendanceSummary, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, batch.CourseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.batchRepo.GetEnrollment(ctx, studentID, batchID); err != nil {
		return nil, err
	}

	entries, err := s.attendanceRepo.ListStudentEntries(ctx, studentID, batchID)
	if err != nil {
		return nil, err
	}

	summary := &dto.StudentAttendanceSummary{
		StudentID:    studentID,
		RequiredDays: course.RequiredAttendanceDays,
	}
	for _, e := range entries {
		switch e.Status {
		case models.AttendancePresent:
			summary.PresentDays++
		case models.AttendanceAbsent:
			summary.AbsentDays++
		case models.AttendanceLeave:
			summary.LeaveDays++
		}
	}
	summary.TotalDays = len(entries)
	summary.Percentage = attendancePercentage(summary.PresentDays, summary.TotalDays)
	return summary, nil
}

// ExportBatchAttendance builds an XLSX workbook of a batch's attendance
func (s *AttendanceService) ExportBatchAttendance(ctx context.Context, batchID int64) (*bytes.Buffer, string, error) {
	summary, err := s.BatchSummary(ctx, batchID)
	if err != nil {
		return nil, "", err
	}

	rows := make([]report.AttendanceRow, 0, len(summary.Students))
	for _, st := range summary.Students {
		rows = append(rows, report.AttendanceRow{
			RegNo:       st.RegNo,
			StudentName: st.StudentName,
			PresentDays: st.PresentDays,
			AbsentDays:  st.AbsentDays,
			LeaveDays:   st.LeaveDays,
			TotalDays:   st.TotalDays,
			Percentage:  st.Percentage,
		})
	}

	buf, err := report.BatchAttendanceWorkbook(summary.BatchCode, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("attendance-%s.xlsx", summary.BatchCode)
	return buf, filename, nil
}

// buildEntries validates that every marked student belongs to the batch
func (s *AttendanceService) buildEntries(ctx context.Context, batchID int64, reqs []dto.AttendanceEntryRequest) ([]*models.AttendanceEntry, error) {
	entries := make([]*models.AttendanceEntry, 0, len(reqs))
	seen := make(map[int64]bool, len(reqs))
	for _, er := range reqs {
		if seen[er.StudentID] {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("student %d is listed twice", er.StudentID))
		}
		seen[er.StudentID] = true

		enrollment, err := s.batchRepo.GetEnrollment(ctx, er.StudentID, batchID)
		if err != nil || enrollment.Status == models.EnrollmentDropped {
			return nil, apperrors.ErrStudentNotInBatch
		}
		entries = append(entries, &models.AttendanceEntry{
			StudentID: er.StudentID,
			Status:    models.AttendanceStatus(er.Status),
		})
	}
	return entries, nil
}

// completeEligibleEnrollments marks active enrollments completed once a
// student's present days reach the course requirement.
func (s *AttendanceService) completeEligibleEnrollments(ctx context.Context, batch *models.Batch, entries []*models.AttendanceEntry) {
	course, err := s.courseRepo.GetCourseByID(ctx, batch.CourseID)
	if err != nil {
		s.logger.Error().Err(err).Int64("courseID", batch.CourseID).Msg("Failed to load course for completion check")
		return
	}

	for _, entry := range entries {
		if entry.Status != models.AttendancePresent {
			continue
		}

		enrollment, err := s.batchRepo.GetEnrollment(ctx, entry.StudentID, batch.ID)
		if err != nil || enrollment.Status != models.EnrollmentActive {
			continue
		}

		present, err := s.attendanceRepo.CountPresentDays(ctx, entry.StudentID, batch.CourseID)
		if err != nil {
			s.logger.Error().Err(err).Int64("studentID", entry.StudentID).Msg("Failed to count present days")
			continue
		}
		if !meetsAttendanceRequirement(present, course.RequiredAttendanceDays) {
			continue
		}

		if err := s.batchRepo.UpdateEnrollmentStatus(ctx, enrollment.ID, models.EnrollmentCompleted); err != nil {
			s.logger.Error().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Failed to complete enrollment")
			continue
		}

		s.logger.Info().Int64("studentID", entry.StudentID).Int64("batchID", batch.ID).
			Int("presentDays", present).Msg("Enrollment completed by attendance")

		if err := s.notifyCompletion(ctx, entry.StudentID, course.Title); err != nil {
			s.logger.Warn().Err(err).Int64("studentID", entry.StudentID).Msg("Failed to notify course completion")
		}
	}
}

func (s *AttendanceService) notifyCompletion(ctx context.Context, studentID int64, courseTitle string) error {
	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.notificationRepo.Create(ctx, &models.Notification{
		UserID:  student.UserID,
		Title:   "Course completed",
		Message: fmt.Sprintf("Congratulations, you have completed the attendance requirement for %s.", courseTitle),
		Level:   models.NotificationInfo,
	})
}
