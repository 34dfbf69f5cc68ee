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
	"github.com/tailorwise/tailorwise/internal/pkg/dberrors"
)

// AttendanceRepository handles attendance sheet persistence
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CreateSheet inserts an attendance sheet and its entries in one
// transaction. The (batch, date) pair is unique.
func (r *AttendanceRepository) CreateSheet(ctx context.Context, a *models.Attendance) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO attendances (batch_id, date, taken_by, remarks)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		a.BatchID, a.Date, a.TakenByID, a.Remarks).Scan(&a.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendances_batch_id_date_key") {
			return apperrors.ErrAttendanceExists
		}
		return fmt.Errorf("error creating attendance sheet: %w", err)
	}

	for _, entry := range a.Entries {
		entry.AttendanceID = a.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO attendance_entries (attendance_id, student_id, status)
			VALUES ($1, $2, $3)
			RETURNING id`,
			entry.AttendanceID, entry.StudentID, entry.Status).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("error creating attendance entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing attendance sheet: %w", err)
	}
	return nil
}

// GetSheetByID retrieves a sheet with its entries
func (r *AttendanceRepository) GetSheetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := r.db.QueryRow(ctx, `
		SELECT id, batch_id, date, taken_by, remarks
		FROM attendances WHERE id = $1`, id).
		Scan(&a.ID, &a.BatchID, &a.Date, &a.TakenByID, &a.Remarks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance sheet: %w", err)
	}

	entries, err := r.listEntries(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Entries = entries
	return a, nil
}

// GetSheetByBatchAndDate retrieves the sheet of a batch on a specific day
func (r *AttendanceRepository) GetSheetByBatchAndDate(ctx context.Context, batchID int64, date time.Time) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := r.db.QueryRow(ctx, `
		SELECT id, batch_id, date, taken_by, remarks
		FROM attendances WHERE batch_id = $1 AND date = $2::date`, batchID, date).
		Scan(&a.ID, &a.BatchID, &a.Date, &a.TakenByID, &a.Remarks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance sheet: %w", err)
	}

	entries, err := r.listEntries(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Entries = entries
	return a, nil
}

func (r *AttendanceRepository) listEntries(ctx context.Context, attendanceID int64) ([]*models.AttendanceEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ae.id, ae.attendance_id, ae.student_id, ae.status,
		       s.reg_no, u.first_name, u.last_name
		FROM attendance_entries ae
		JOIN students s ON s.id = ae.student_id
		JOIN users u ON u.id = s.user_id
		WHERE ae.attendance_id = $1
		ORDER BY s.reg_no`, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AttendanceEntry
	for rows.Next() {
		e := &models.AttendanceEntry{Student: &models.Student{User: &models.User{}}}
		if err := rows.Scan(&e.ID, &e.AttendanceID, &e.StudentID, &e.Status,
			&e.Student.RegNo, &e.Student.User.FirstName, &e.Student.User.LastName); err != nil {
			return nil, fmt.Errorf("error scanning attendance entry: %w", err)
		}
		e.Student.ID = e.StudentID
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceEntries deletes and re-inserts the entries of a sheet
func (r *AttendanceRepository) ReplaceEntries(ctx context.Context, attendanceID int64, entries []*models.AttendanceEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM attendance_entries WHERE attendance_id = $1`, attendanceID); err != nil {
		return fmt.Errorf("error clearing attendance entries: %w", err)
	}

	for _, entry := range entries {
		entry.AttendanceID = attendanceID
		err = tx.QueryRow(ctx, `
			INSERT INTO attendance_entries (attendance_id, student_id, status)
			VALUES ($1, $2, $3)
			RETURNING id`,
			entry.AttendanceID, entry.StudentID, entry.Status).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("error inserting attendance entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing attendance entries: %w", err)
	}
	return nil
}

// DeleteSheet removes a sheet; entries cascade
func (r *AttendanceRepository) DeleteSheet(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance sheet: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// ListSheetsByBatch returns sheets of a batch within an optional date range
func (r *AttendanceRepository) ListSheetsByBatch(ctx context.Context, batchID int64, from, to *time.Time) ([]*models.Attendance, error) {
	query := `
		SELECT id, batch_id, date, taken_by, remarks
		FROM attendances WHERE batch_id = $1`
	args := []interface{}{batchID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance sheets: %w", err)
	}
	defer rows.Close()

	var sheets []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{}
		if err := rows.Scan(&a.ID, &a.BatchID, &a.Date, &a.TakenByID, &a.Remarks); err != nil {
			return nil, fmt.Errorf("error scanning attendance sheet: %w", err)
		}
		sheets = append(sheets, a)
	}
	return sheets, rows.Err()
}

// CountSheets counts the attendance days recorded for a batch
func (r *AttendanceRepository) CountSheets(ctx context.Context, batchID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting attendance sheets: %w", err)
	}
	return count, nil
}

// StatusCount is a per-student tally of one attendance status
type StatusCount struct {
	StudentID int64
	Status    models.AttendanceStatus
	Count     int
}

// CountStatusesByBatch tallies entries per student and status for a batch
func (r *AttendanceRepository) CountStatusesByBatch(ctx context.Context, batchID int64) ([]StatusCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ae.student_id, ae.status, COUNT(*)
		FROM attendance_entries ae
		JOIN attendances a ON a.id = ae.attendance_id
		WHERE a.batch_id = $1
		GROUP BY ae.student_id, ae.status`, batchID)
	if err != nil {
		return nil, fmt.Errorf("error counting attendance statuses: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.StudentID, &c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DailyPresence is the per-day presence tally for a batch
type DailyPresence struct {
	Date    time.Time
	Present int
	Total   int
}

// CountDailyPresence tallies present marks against total marks for each
// recorded day of a batch, oldest first.
func (r *AttendanceRepository) CountDailyPresence(ctx context.Context, batchID int64) ([]DailyPresence, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.date, COUNT(*) FILTER (WHERE ae.status = 'P'), COUNT(*)
		FROM attendance_entries ae
		JOIN attendances a ON a.id = ae.attendance_id
		WHERE a.batch_id = $1
		GROUP BY a.date
		ORDER BY a.date`, batchID)
	if err != nil {
		return nil, fmt.Errorf("error tallying daily presence: %w", err)
	}
	defer rows.Close()

	var days []DailyPresence
	for rows.Next() {
		var d DailyPresence
		if err := rows.Scan(&d.Date, &d.Present, &d.Total); err != nil {
			return nil, fmt.Errorf("error scanning daily presence: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// CountPresentDays counts days a student was marked present across all
// sheets of batches belonging to a course.
func (r *AttendanceRepository) CountPresentDays(ctx context.Context, studentID, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendance_entries ae
		JOIN attendances a ON a.id = ae.attendance_id
		JOIN batches b ON b.id = a.batch_id
		WHERE ae.student_id = $1 AND b.course_id = $2 AND ae.status = 'P'`,
		studentID, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting present days: %w", err)
	}
	return count, nil
}

// ListStudentEntries returns a student's marks in one batch, oldest first
func (r *AttendanceRepository) ListStudentEntries(ctx context.Context, studentID, batchID int64) ([]*models.AttendanceEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ae.id, ae.attendance_id, ae.student_id, ae.status
		FROM attendance_entries ae
		JOIN attendances a ON a.id = ae.attendance_id
		WHERE ae.student_id = $1 AND a.batch_id = $2
		ORDER BY a.date`, studentID, batchID)
	if err != nil {
		return nil, fmt.Errorf("error listing student attendance: %w", err)
	}
	defer rows.Close()

	var entries []*models.AttendanceEntry
	for rows.Next() {
		e := &models.AttendanceEntry{}
		if err := rows.Scan(&e.ID, &e.AttendanceID, &e.StudentID, &e.Status); err != nil {
			return nil, fmt.Errorf("error scanning attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
