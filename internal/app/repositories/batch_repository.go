package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/dberrors"
)

// BatchRepository handles batch and enrollment persistence
type BatchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func marshalSchedule(schedule map[string]string) ([]byte, error) {
	if schedule == nil {
		schedule = map[string]string{}
	}
	raw, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("error marshalling schedule: %w", err)
	}
	return raw, nil
}

// CreateBatch inserts a new batch. The schedule map is stored as JSONB.
func (r *BatchRepository) CreateBatch(ctx context.Context, b *models.Batch) error {
	raw, err := marshalSchedule(b.Schedule)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO batches (course_id, trainer_id, code, start_date, end_date, capacity, schedule)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		b.CourseID, b.TrainerID, b.Code, b.StartDate, b.EndDate, b.Capacity, raw).
		Scan(&b.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_code_key") {
			return apperrors.ErrBatchCodeExists
		}
		return fmt.Errorf("error creating batch: %w", err)
	}
	return nil
}

func scanBatch(row pgx.Row) (*models.Batch, error) {
	b := &models.Batch{}
	var raw []byte
	err := row.Scan(&b.ID, &b.CourseID, &b.TrainerID, &b.Code, &b.StartDate,
		&b.EndDate, &b.Capacity, &raw)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &b.Schedule); err != nil {
			return nil, fmt.Errorf("error unmarshalling schedule: %w", err)
		}
	}
	return b, nil
}

// GetBatchByID retrieves a batch by ID
func (r *BatchRepository) GetBatchByID(ctx context.Context, id int64) (*models.Batch, error) {
	b, err := scanBatch(r.db.QueryRow(ctx, `
		SELECT id, course_id, trainer_id, code, start_date, end_date, capacity, schedule
		FROM batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}
	return b, nil
}

// UpdateBatch persists the mutable batch fields
func (r *BatchRepository) UpdateBatch(ctx context.Context, b *models.Batch) error {
	raw, err := marshalSchedule(b.Schedule)
	if err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE batches
		SET trainer_id = $1, start_date = $2, end_date = $3, capacity = $4, schedule = $5
		WHERE id = $6`,
		b.TrainerID, b.StartDate, b.EndDate, b.Capacity, raw, b.ID)
	if err != nil {
		return fmt.Errorf("error updating batch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// DeleteBatch removes a batch
func (r *BatchRepository) DeleteBatch(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting batch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// ListBatches retrieves batches matching the filter with pagination
func (r *BatchRepository) ListBatches(ctx context.Context, courseID, trainerID *int64, offset uint64, limit int) ([]*models.Batch, int64, error) {
	base := r.sb.Select("id", "course_id", "trainer_id", "code", "start_date", "end_date", "capacity", "schedule").
		From("batches")
	countQuery := r.sb.Select("COUNT(*)").From("batches")

	if courseID != nil {
		base = base.Where(squirrel.Eq{"course_id": *courseID})
		countQuery = countQuery.Where(squirrel.Eq{"course_id": *courseID})
	}
	if trainerID != nil {
		base = base.Where(squirrel.Eq{"trainer_id": *trainerID})
		countQuery = countQuery.Where(squirrel.Eq{"trainer_id": *trainerID})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build batch count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting batches: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("start_date DESC", "id").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build batch list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning batch row: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, total, rows.Err()
}

// ListBatchesStartingOn returns batches whose start_date falls on the
// given calendar day. Used by the daily worker jobs.
func (r *BatchRepository) ListBatchesStartingOn(ctx context.Context, day time.Time) ([]*models.Batch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, trainer_id, code, start_date, end_date, capacity, schedule
		FROM batches WHERE start_date = $1::date`, day)
	if err != nil {
		return nil, fmt.Errorf("error listing batches by start date: %w", err)
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning batch row: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// CountActiveEnrollments counts non-dropped enrollments in a batch
func (r *BatchRepository) CountActiveEnrollments(ctx context.Context, batchID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments
		WHERE batch_id = $1 AND status <> 'dropped'`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// CreateEnrollment enrolls a student into a batch
func (r *BatchRepository) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, batch_id, enrolled_on, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		e.StudentID, e.BatchID, e.EnrolledOn, e.Status).Scan(&e.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_batch_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (r *BatchRepository) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, batch_id, enrolled_on, status
		FROM enrollments WHERE id = $1`, id).
		Scan(&e.ID, &e.StudentID, &e.BatchID, &e.EnrolledOn, &e.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return e, nil
}

// GetEnrollment retrieves a student's enrollment in a specific batch
func (r *BatchRepository) GetEnrollment(ctx context.Context, studentID, batchID int64) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, batch_id, enrolled_on, status
		FROM enrollments WHERE student_id = $1 AND batch_id = $2`, studentID, batchID).
		Scan(&e.ID, &e.StudentID, &e.BatchID, &e.EnrolledOn, &e.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return e, nil
}

// UpdateEnrollmentStatus moves an enrollment through its lifecycle
func (r *BatchRepository) UpdateEnrollmentStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// ListEnrollmentsByBatch returns all enrollments in a batch with students loaded
func (r *BatchRepository) ListEnrollmentsByBatch(ctx context.Context, batchID int64) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.batch_id, e.enrolled_on, e.status,
		       s.id, s.user_id, s.reg_no, s.guardian_name, s.guardian_phone,
		       s.admission_date, s.address, s.photo_url, s.active,
		       u.first_name, u.last_name, u.email, u.phone
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN users u ON u.id = s.user_id
		WHERE e.batch_id = $1
		ORDER BY s.reg_no`, batchID)
	if err != nil {
		return nil, fmt.Errorf("error listing batch enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{Student: &models.Student{User: &models.User{}}}
		s := e.Student
		u := s.User
		if err := rows.Scan(&e.ID, &e.StudentID, &e.BatchID, &e.EnrolledOn, &e.Status,
			&s.ID, &s.UserID, &s.RegNo, &s.GuardianName, &s.GuardianPhone,
			&s.AdmissionDate, &s.Address, &s.PhotoURL, &s.Active,
			&u.FirstName, &u.LastName, &u.Email, &u.Phone); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// ListEnrollmentsByStudent returns a student's enrollments with batches loaded
func (r *BatchRepository) ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.batch_id, e.enrolled_on, e.status,
		       b.id, b.course_id, b.trainer_id, b.code, b.start_date, b.end_date, b.capacity
		FROM enrollments e
		JOIN batches b ON b.id = e.batch_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_on DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{Batch: &models.Batch{}}
		b := e.Batch
		if err := rows.Scan(&e.ID, &e.StudentID, &e.BatchID, &e.EnrolledOn, &e.Status,
			&b.ID, &b.CourseID, &b.TrainerID, &b.Code, &b.StartDate, &b.EndDate, &b.Capacity); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// HasCompletedEnrollment reports whether a student has a completed
// enrollment in any batch of a course.
func (r *BatchRepository) HasCompletedEnrollment(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments e
			JOIN batches b ON b.id = e.batch_id
			WHERE e.student_id = $1 AND b.course_id = $2 AND e.status = 'completed')`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking completed enrollment: %w", err)
	}
	return exists, nil
}
