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
)

// CertificateRepository handles certificate persistence
type CertificateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// NextSequenceForDay returns the next per-day certificate sequence
func (r *CertificateRepository) NextSequenceForDay(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM certificates WHERE issue_date = $1::date`, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting certificates for day: %w", err)
	}
	return count + 1, nil
}

// Create inserts a new certificate
func (r *CertificateRepository) Create(ctx context.Context, c *models.Certificate) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO certificates (certificate_no, student_id, course_id, issue_date, qr_hash, remarks, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		c.CertificateNo, c.StudentID, c.CourseID, c.IssueDate, c.QRHash,
		c.Remarks, c.Revoked).Scan(&c.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "certificates_certificate_no_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating certificate: %w", err)
	}
	return nil
}

const certificateSelect = `
	SELECT c.id, c.certificate_no, c.student_id, c.course_id, c.issue_date,
	       c.qr_hash, c.remarks, c.revoked, c.pdf_path,
	       s.reg_no, s.user_id, u.first_name, u.last_name,
	       co.code, co.title
	FROM certificates c
	JOIN students s ON s.id = c.student_id
	JOIN users u ON u.id = s.user_id
	LEFT JOIN courses co ON co.id = c.course_id`

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	c := &models.Certificate{
		Student: &models.Student{User: &models.User{}},
		Course:  &models.Course{},
	}
	var courseCode, courseTitle *string
	err := row.Scan(&c.ID, &c.CertificateNo, &c.StudentID, &c.CourseID, &c.IssueDate,
		&c.QRHash, &c.Remarks, &c.Revoked, &c.PDFPath,
		&c.Student.RegNo, &c.Student.UserID,
		&c.Student.User.FirstName, &c.Student.User.LastName,
		&courseCode, &courseTitle)
	if err != nil {
		return nil, err
	}
	c.Student.ID = c.StudentID
	if courseCode != nil {
		c.Course.Code = *courseCode
		c.Course.Title = *courseTitle
		if c.CourseID != nil {
			c.Course.ID = *c.CourseID
		}
	} else {
		c.Course = nil
	}
	return c, nil
}

// GetByID retrieves a certificate (with student and course) by ID
func (r *CertificateRepository) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	c, err := scanCertificate(r.db.QueryRow(ctx, certificateSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	return c, nil
}

// GetByQRHash retrieves a certificate by its QR hash for public verification
func (r *CertificateRepository) GetByQRHash(ctx context.Context, qrHash string) (*models.Certificate, error) {
	c, err := scanCertificate(r.db.QueryRow(ctx, certificateSelect+` WHERE c.qr_hash = $1`, qrHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	return c, nil
}

// HasValidCertificate reports whether a non-revoked certificate exists
// for the student and course.
func (r *CertificateRepository) HasValidCertificate(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM certificates
			WHERE student_id = $1 AND course_id = $2 AND revoked = FALSE)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking existing certificate: %w", err)
	}
	return exists, nil
}

// SetRevoked toggles a certificate's revoked flag
func (r *CertificateRepository) SetRevoked(ctx context.Context, id int64, revoked bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE certificates SET revoked = $1 WHERE id = $2`, revoked, id)
	if err != nil {
		return fmt.Errorf("error updating certificate revoked flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}

// SetPDFPath stores the path of the generated certificate PDF
func (r *CertificateRepository) SetPDFPath(ctx context.Context, id int64, path string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE certificates SET pdf_path = $1 WHERE id = $2`, path, id)
	if err != nil {
		return fmt.Errorf("error updating certificate pdf path: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}

// List retrieves certificates matching the filter with pagination
func (r *CertificateRepository) List(ctx context.Context, studentID, courseID *int64, revoked *bool, offset uint64, limit int) ([]*models.Certificate, int64, error) {
	base := r.sb.Select(
		"c.id", "c.certificate_no", "c.student_id", "c.course_id", "c.issue_date",
		"c.qr_hash", "c.remarks", "c.revoked", "c.pdf_path",
		"s.reg_no", "s.user_id", "u.first_name", "u.last_name",
		"co.code", "co.title").
		From("certificates c").
		Join("students s ON s.id = c.student_id").
		Join("users u ON u.id = s.user_id").
		LeftJoin("courses co ON co.id = c.course_id")
	countQuery := r.sb.Select("COUNT(*)").From("certificates c")

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if studentID != nil {
			q = q.Where(squirrel.Eq{"c.student_id": *studentID})
		}
		if courseID != nil {
			q = q.Where(squirrel.Eq{"c.course_id": *courseID})
		}
		if revoked != nil {
			q = q.Where(squirrel.Eq{"c.revoked": *revoked})
		}
		return q
	}
	base = apply(base)
	countQuery = apply(countQuery)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build certificate count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting certificates: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("c.issue_date DESC", "c.id DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build certificate list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing certificates: %w", err)
	}
	defer rows.Close()

	var certs []*models.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning certificate row: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, total, rows.Err()
}
