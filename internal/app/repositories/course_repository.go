package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/dberrors"
)

// CourseRepository handles course and trainer persistence
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// CreateCourse inserts a new course
func (r *CourseRepository) CreateCourse(ctx context.Context, c *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (code, title, duration_weeks, total_fees, required_attendance_days, syllabus, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		c.Code, c.Title, c.DurationWeeks, c.TotalFees, c.RequiredAttendanceDays,
		c.Syllabus, c.Active).Scan(&c.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	c := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, code, title, duration_weeks, total_fees, required_attendance_days, syllabus, active
		FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Title, &c.DurationWeeks, &c.TotalFees,
			&c.RequiredAttendanceDays, &c.Syllabus, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, nil
}

// UpdateCourse persists the mutable course fields
func (r *CourseRepository) UpdateCourse(ctx context.Context, c *models.Course) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, duration_weeks = $2, total_fees = $3,
		    required_attendance_days = $4, syllabus = $5, active = $6
		WHERE id = $7`,
		c.Title, c.DurationWeeks, c.TotalFees, c.RequiredAttendanceDays,
		c.Syllabus, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes a course. Courses referenced by batches or
// receipts are protected by foreign keys.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListCourses returns all courses, optionally only active ones
func (r *CourseRepository) ListCourses(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	query := `
		SELECT id, code, title, duration_weeks, total_fees, required_attendance_days, syllabus, active
		FROM courses`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.DurationWeeks, &c.TotalFees,
			&c.RequiredAttendanceDays, &c.Syllabus, &c.Active); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

const trainerSelect = `
	SELECT t.id, t.user_id, t.emp_no, t.join_date, t.salary, t.is_active,
	       u.id, u.username, u.email, u.password, u.first_name, u.last_name,
	       u.phone, u.address, u.role_type, u.is_active, u.last_login_at,
	       u.created_at, u.updated_at
	FROM trainers t
	JOIN users u ON u.id = t.user_id`

func scanTrainer(row pgx.Row) (*models.Trainer, error) {
	t := &models.Trainer{User: &models.User{}}
	u := t.User
	err := row.Scan(
		&t.ID, &t.UserID, &t.EmpNo, &t.JoinDate, &t.Salary, &t.IsActive,
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Address, &u.RoleType, &u.IsActive, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTrainerWithUser inserts the user account and the trainer record
// in one transaction.
func (r *CourseRepository) CreateTrainerWithUser(ctx context.Context, user *models.User, trainer *models.Trainer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password, first_name, last_name, phone, address, role_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Email, user.Password, user.FirstName, user.LastName,
		user.Phone, user.Address, user.RoleType, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating trainer user: %w", err)
	}

	trainer.UserID = user.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO trainers (user_id, emp_no, join_date, salary, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		trainer.UserID, trainer.EmpNo, trainer.JoinDate, trainer.Salary, trainer.IsActive).
		Scan(&trainer.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "trainers_emp_no_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating trainer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing trainer creation: %w", err)
	}
	trainer.User = user
	return nil
}

// GetTrainerByID retrieves a trainer (with its user) by ID
func (r *CourseRepository) GetTrainerByID(ctx context.Context, id int64) (*models.Trainer, error) {
	t, err := scanTrainer(r.db.QueryRow(ctx, trainerSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error retrieving trainer: %w", err)
	}
	return t, nil
}

// GetTrainerByUserID retrieves a trainer by its user account ID
func (r *CourseRepository) GetTrainerByUserID(ctx context.Context, userID int64) (*models.Trainer, error) {
	t, err := scanTrainer(r.db.QueryRow(ctx, trainerSelect+` WHERE t.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error retrieving trainer: %w", err)
	}
	return t, nil
}

// UpdateTrainer persists the mutable trainer fields
func (r *CourseRepository) UpdateTrainer(ctx context.Context, t *models.Trainer) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE trainers SET salary = $1, is_active = $2 WHERE id = $3`,
		t.Salary, t.IsActive, t.ID)
	if err != nil {
		return fmt.Errorf("error updating trainer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrainerNotFound
	}
	return nil
}

// ListTrainers returns all trainers with their user accounts
func (r *CourseRepository) ListTrainers(ctx context.Context, activeOnly bool) ([]*models.Trainer, error) {
	query := trainerSelect
	if activeOnly {
		query += ` WHERE t.is_active = TRUE`
	}
	query += ` ORDER BY t.emp_no`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing trainers: %w", err)
	}
	defer rows.Close()

	var trainers []*models.Trainer
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trainer row: %w", err)
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}
