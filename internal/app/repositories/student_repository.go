package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/dberrors"
	"github.com/tailorwise/tailorwise/internal/pkg/logger"
)

// StudentRepository handles enquiry, student and measurement persistence
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateEnquiry inserts a new enquiry with status "new"
func (r *StudentRepository) CreateEnquiry(ctx context.Context, e *models.Enquiry) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enquiries (name, phone, email, course_interest, source, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		e.Name, e.Phone, e.Email, e.CourseInterest, e.Source, e.Status, e.Notes).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("name", e.Name).Msg("Error creating enquiry")
		return fmt.Errorf("error creating enquiry: %w", err)
	}
	return nil
}

// GetEnquiryByID retrieves an enquiry by ID
func (r *StudentRepository) GetEnquiryByID(ctx context.Context, id int64) (*models.Enquiry, error) {
	e := &models.Enquiry{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone, email, course_interest, source, status, notes, created_at
		FROM enquiries WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.CourseInterest, &e.Source,
			&e.Status, &e.Notes, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("error retrieving enquiry: %w", err)
	}
	return e, nil
}

// UpdateEnquiry persists the mutable enquiry fields
func (r *StudentRepository) UpdateEnquiry(ctx context.Context, e *models.Enquiry) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enquiries
		SET name = $1, phone = $2, email = $3, course_interest = $4,
		    source = $5, status = $6, notes = $7
		WHERE id = $8`,
		e.Name, e.Phone, e.Email, e.CourseInterest, e.Source, e.Status, e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("error updating enquiry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnquiryNotFound
	}
	return nil
}

// DeleteEnquiry removes an enquiry
func (r *StudentRepository) DeleteEnquiry(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enquiry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnquiryNotFound
	}
	return nil
}

// ListEnquiries retrieves enquiries matching the filter with pagination
func (r *StudentRepository) ListEnquiries(ctx context.Context, status, search string, offset uint64, limit int) ([]*models.Enquiry, int64, error) {
	base := r.sb.Select("id", "name", "phone", "email", "course_interest", "source", "status", "notes", "created_at").
		From("enquiries")
	countQuery := r.sb.Select("COUNT(*)").From("enquiries")

	if status != "" {
		base = base.Where(squirrel.Eq{"status": status})
		countQuery = countQuery.Where(squirrel.Eq{"status": status})
	}
	if search != "" {
		like := "%" + search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"phone": like},
			squirrel.ILike{"email": like},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build enquiry count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting enquiries: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("created_at DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build enquiry list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []*models.Enquiry
	for rows.Next() {
		e := &models.Enquiry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.CourseInterest,
			&e.Source, &e.Status, &e.Notes, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning enquiry row: %w", err)
		}
		enquiries = append(enquiries, e)
	}
	return enquiries, total, rows.Err()
}

// NextRegNoSequence returns the next per-year registration sequence.
// Counting existing rows for the admission year matches how numbers are
// assigned manually in the office.
func (r *StudentRepository) NextRegNoSequence(ctx context.Context, year int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM students
		WHERE EXTRACT(YEAR FROM admission_date) = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students for year %d: %w", year, err)
	}
	return count + 1, nil
}

// CreateStudentWithUser inserts the user account and the student record in
// one transaction so a failed admission leaves nothing behind.
func (r *StudentRepository) CreateStudentWithUser(ctx context.Context, user *models.User, student *models.Student) error {
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
		return fmt.Errorf("error creating student user: %w", err)
	}

	student.UserID = user.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO students (user_id, reg_no, guardian_name, guardian_phone, admission_date, address, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		student.UserID, student.RegNo, student.GuardianName, student.GuardianPhone,
		student.AdmissionDate, student.Address, student.Active).
		Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing student creation: %w", err)
	}
	student.User = user
	return nil
}

const studentSelect = `
	SELECT s.id, s.user_id, s.reg_no, s.guardian_name, s.guardian_phone,
	       s.admission_date, s.address, s.photo_url, s.active,
	       u.id, u.username, u.email, u.password, u.first_name, u.last_name,
	       u.phone, u.address, u.role_type, u.is_active, u.last_login_at,
	       u.created_at, u.updated_at
	FROM students s
	JOIN users u ON u.id = s.user_id`

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{User: &models.User{}}
	u := s.User
	err := row.Scan(
		&s.ID, &s.UserID, &s.RegNo, &s.GuardianName, &s.GuardianPhone,
		&s.AdmissionDate, &s.Address, &s.PhotoURL, &s.Active,
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Address, &u.RoleType, &u.IsActive, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudentByID retrieves a student (with its user) by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// GetStudentByUserID retrieves a student by its user account ID
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// UpdateStudent persists the mutable student fields
func (r *StudentRepository) UpdateStudent(ctx context.Context, s *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET guardian_name = $1, guardian_phone = $2, address = $3, active = $4
		WHERE id = $5`,
		s.GuardianName, s.GuardianPhone, s.Address, s.Active, s.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStudentPhoto sets or clears the student's photo path
func (r *StudentRepository) UpdateStudentPhoto(ctx context.Context, studentID int64, photoURL *string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET photo_url = $1 WHERE id = $2`, photoURL, studentID)
	if err != nil {
		return fmt.Errorf("error updating student photo: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ListStudents retrieves students matching the filter with pagination
func (r *StudentRepository) ListStudents(ctx context.Context, batchID *int64, active *bool, search string, offset uint64, limit int) ([]*models.Student, int64, error) {
	base := r.sb.Select(
		"s.id", "s.user_id", "s.reg_no", "s.guardian_name", "s.guardian_phone",
		"s.admission_date", "s.address", "s.photo_url", "s.active",
		"u.id", "u.username", "u.email", "u.password", "u.first_name", "u.last_name",
		"u.phone", "u.address", "u.role_type", "u.is_active", "u.last_login_at",
		"u.created_at", "u.updated_at").
		From("students s").
		Join("users u ON u.id = s.user_id")
	countQuery := r.sb.Select("COUNT(*)").From("students s").Join("users u ON u.id = s.user_id")

	if batchID != nil {
		join := "enrollments e ON e.student_id = s.id AND e.batch_id = ? AND e.status <> 'dropped'"
		base = base.Join(join, *batchID)
		countQuery = countQuery.Join(join, *batchID)
	}
	if active != nil {
		base = base.Where(squirrel.Eq{"s.active": *active})
		countQuery = countQuery.Where(squirrel.Eq{"s.active": *active})
	}
	if search != "" {
		like := "%" + search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"s.reg_no": like},
			squirrel.ILike{"u.first_name": like},
			squirrel.ILike{"u.last_name": like},
			squirrel.ILike{"u.phone": like},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("s.reg_no").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// DeleteStudent removes a student together with their login account. The
// user cascade clears the student row, measurements and enrollments;
// students with posted receipts are protected by the receipt FK.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM students WHERE id = $1`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error retrieving student for delete: %w", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentHasReceipts
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// CreateMeasurement records a new dated measurement for a student
func (r *StudentRepository) CreateMeasurement(ctx context.Context, m *models.StudentMeasurement) error {
	if m.DateTaken.IsZero() {
		m.DateTaken = time.Now()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO student_measurements
			(student_id, date_taken, neck, chest, waist, hips, sleeve_length, inseam, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		m.StudentID, m.DateTaken, m.Neck, m.Chest, m.Waist, m.Hips,
		m.SleeveLength, m.Inseam, m.Notes).
		Scan(&m.ID)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", m.StudentID).Msg("Error creating measurement")
		return fmt.Errorf("error creating measurement: %w", err)
	}
	return nil
}

// GetMeasurementByID retrieves one measurement record
func (r *StudentRepository) GetMeasurementByID(ctx context.Context, id int64) (*models.StudentMeasurement, error) {
	m := &models.StudentMeasurement{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, date_taken, neck, chest, waist, hips, sleeve_length, inseam, notes
		FROM student_measurements WHERE id = $1`, id).
		Scan(&m.ID, &m.StudentID, &m.DateTaken, &m.Neck, &m.Chest,
			&m.Waist, &m.Hips, &m.SleeveLength, &m.Inseam, &m.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeasurementNotFound
		}
		return nil, fmt.Errorf("error retrieving measurement: %w", err)
	}
	return m, nil
}

// UpdateMeasurement persists an edited measurement record
func (r *StudentRepository) UpdateMeasurement(ctx context.Context, m *models.StudentMeasurement) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE student_measurements
		SET date_taken = $1, neck = $2, chest = $3, waist = $4, hips = $5,
			sleeve_length = $6, inseam = $7, notes = $8
		WHERE id = $9`,
		m.DateTaken, m.Neck, m.Chest, m.Waist, m.Hips,
		m.SleeveLength, m.Inseam, m.Notes, m.ID)
	if err != nil {
		return fmt.Errorf("error updating measurement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMeasurementNotFound
	}
	return nil
}

// DeleteMeasurement removes a measurement record
func (r *StudentRepository) DeleteMeasurement(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM student_measurements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting measurement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMeasurementNotFound
	}
	return nil
}

// ListMeasurements returns a student's measurements, newest first
func (r *StudentRepository) ListMeasurements(ctx context.Context, studentID int64) ([]*models.StudentMeasurement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, date_taken, neck, chest, waist, hips, sleeve_length, inseam, notes
		FROM student_measurements
		WHERE student_id = $1
		ORDER BY date_taken DESC, id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing measurements: %w", err)
	}
	defer rows.Close()

	var measurements []*models.StudentMeasurement
	for rows.Next() {
		m := &models.StudentMeasurement{}
		if err := rows.Scan(&m.ID, &m.StudentID, &m.DateTaken, &m.Neck, &m.Chest,
			&m.Waist, &m.Hips, &m.SleeveLength, &m.Inseam, &m.Notes); err != nil {
			return nil, fmt.Errorf("error scanning measurement row: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}
