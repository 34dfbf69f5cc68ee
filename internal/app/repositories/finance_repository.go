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

// FinanceRepository handles receipts, expenses, payrolls and reminders
type FinanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(db *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// NextReceiptSequence returns the next per-year receipt sequence
func (r *FinanceRepository) NextReceiptSequence(ctx context.Context, year int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM fees_receipts
		WHERE EXTRACT(YEAR FROM date) = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting receipts for year %d: %w", year, err)
	}
	return count + 1, nil
}

// CreateReceipt inserts a new fee receipt
func (r *FinanceRepository) CreateReceipt(ctx context.Context, rc *models.FeesReceipt) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO fees_receipts
			(receipt_no, student_id, course_id, batch_id, amount, mode, txn_id, date, posted_by, locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		rc.ReceiptNo, rc.StudentID, rc.CourseID, rc.BatchID, rc.Amount, rc.Mode,
		rc.TxnID, rc.Date, rc.PostedByID, rc.Locked).Scan(&rc.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "fees_receipts_receipt_no_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating receipt: %w", err)
	}
	return nil
}

const receiptColumns = `id, receipt_no, student_id, course_id, batch_id, amount, mode,
	txn_id, date, posted_by, locked, pdf_path`

func scanReceipt(row pgx.Row) (*models.FeesReceipt, error) {
	rc := &models.FeesReceipt{}
	err := row.Scan(&rc.ID, &rc.ReceiptNo, &rc.StudentID, &rc.CourseID, &rc.BatchID,
		&rc.Amount, &rc.Mode, &rc.TxnID, &rc.Date, &rc.PostedByID, &rc.Locked, &rc.PDFPath)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// GetReceiptByID retrieves a receipt by ID
func (r *FinanceRepository) GetReceiptByID(ctx context.Context, id int64) (*models.FeesReceipt, error) {
	rc, err := scanReceipt(r.db.QueryRow(ctx,
		`SELECT `+receiptColumns+` FROM fees_receipts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("error retrieving receipt: %w", err)
	}
	return rc, nil
}

// UpdateReceipt persists the editable receipt fields
func (r *FinanceRepository) UpdateReceipt(ctx context.Context, rc *models.FeesReceipt) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE fees_receipts
		SET amount = $1, mode = $2, txn_id = $3, date = $4
		WHERE id = $5`,
		rc.Amount, rc.Mode, rc.TxnID, rc.Date, rc.ID)
	if err != nil {
		return fmt.Errorf("error updating receipt: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}
	return nil
}

// SetReceiptLocked toggles a receipt's lock flag
func (r *FinanceRepository) SetReceiptLocked(ctx context.Context, id int64, locked bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE fees_receipts SET locked = $1 WHERE id = $2`, locked, id)
	if err != nil {
		return fmt.Errorf("error updating receipt lock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}
	return nil
}

// SetReceiptPDFPath stores the path of the generated receipt PDF
func (r *FinanceRepository) SetReceiptPDFPath(ctx context.Context, id int64, path string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE fees_receipts SET pdf_path = $1 WHERE id = $2`, path, id)
	if err != nil {
		return fmt.Errorf("error updating receipt pdf path: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}
	return nil
}

// DeleteReceipt removes a receipt
func (r *FinanceRepository) DeleteReceipt(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM fees_receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting receipt: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}
	return nil
}

// ListReceipts retrieves receipts matching the filter with pagination
func (r *FinanceRepository) ListReceipts(ctx context.Context, studentID, batchID *int64, mode string, from, to *time.Time, offset uint64, limit int) ([]*models.FeesReceipt, int64, error) {
	base := r.sb.Select(receiptColumns).From("fees_receipts")
	countQuery := r.sb.Select("COUNT(*)").From("fees_receipts")

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if studentID != nil {
			q = q.Where(squirrel.Eq{"student_id": *studentID})
		}
		if batchID != nil {
			q = q.Where(squirrel.Eq{"batch_id": *batchID})
		}
		if mode != "" {
			q = q.Where(squirrel.Eq{"mode": mode})
		}
		if from != nil {
			q = q.Where(squirrel.GtOrEq{"date": *from})
		}
		if to != nil {
			q = q.Where(squirrel.LtOrEq{"date": *to})
		}
		return q
	}
	base = apply(base)
	countQuery = apply(countQuery)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build receipt count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting receipts: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("date DESC", "id DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build receipt list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.FeesReceipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning receipt row: %w", err)
		}
		receipts = append(receipts, rc)
	}
	return receipts, total, rows.Err()
}

// SumPaidByStudent sums all receipt amounts posted for a student
func (r *FinanceRepository) SumPaidByStudent(ctx context.Context, studentID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM fees_receipts WHERE student_id = $1`,
		studentID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing student payments: %w", err)
	}
	return total, nil
}

// MonthlyTotal is one month's aggregate for income or expenses
type MonthlyTotal struct {
	Month string
	Total float64
}

// SumReceiptsByMonth aggregates receipt totals per YYYY-MM month
func (r *FinanceRepository) SumReceiptsByMonth(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount)
		FROM fees_receipts
		WHERE date BETWEEN $1 AND $2
		GROUP BY month ORDER BY month`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error aggregating receipts: %w", err)
	}
	defer rows.Close()

	var totals []MonthlyTotal
	for rows.Next() {
		var t MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("error scanning monthly income: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// CreateExpense inserts a new expense
func (r *FinanceRepository) CreateExpense(ctx context.Context, e *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (date, description, category, amount, added_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		e.Date, e.Description, e.Category, e.Amount, e.AddedByID).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("error creating expense: %w", err)
	}
	return nil
}

// GetExpenseByID retrieves an expense by ID
func (r *FinanceRepository) GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	e := &models.Expense{}
	err := r.db.QueryRow(ctx, `
		SELECT id, date, description, category, amount, added_by
		FROM expenses WHERE id = $1`, id).
		Scan(&e.ID, &e.Date, &e.Description, &e.Category, &e.Amount, &e.AddedByID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("error retrieving expense: %w", err)
	}
	return e, nil
}

// UpdateExpense persists the mutable expense fields
func (r *FinanceRepository) UpdateExpense(ctx context.Context, e *models.Expense) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE expenses SET date = $1, description = $2, category = $3, amount = $4
		WHERE id = $5`,
		e.Date, e.Description, e.Category, e.Amount, e.ID)
	if err != nil {
		return fmt.Errorf("error updating expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// DeleteExpense removes an expense
func (r *FinanceRepository) DeleteExpense(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// ListExpenses retrieves expenses matching the filter with pagination
func (r *FinanceRepository) ListExpenses(ctx context.Context, category string, from, to *time.Time, offset uint64, limit int) ([]*models.Expense, int64, error) {
	base := r.sb.Select("id", "date", "description", "category", "amount", "added_by").From("expenses")
	countQuery := r.sb.Select("COUNT(*)").From("expenses")

	apply := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if category != "" {
			q = q.Where(squirrel.Eq{"category": category})
		}
		if from != nil {
			q = q.Where(squirrel.GtOrEq{"date": *from})
		}
		if to != nil {
			q = q.Where(squirrel.LtOrEq{"date": *to})
		}
		return q
	}
	base = apply(base)
	countQuery = apply(countQuery)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build expense count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting expenses: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("date DESC", "id DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build expense list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Category, &e.Amount, &e.AddedByID); err != nil {
			return nil, 0, fmt.Errorf("error scanning expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, total, rows.Err()
}

// SumExpensesByMonth aggregates expense totals per YYYY-MM month
func (r *FinanceRepository) SumExpensesByMonth(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount)
		FROM expenses
		WHERE date BETWEEN $1 AND $2
		GROUP BY month ORDER BY month`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error aggregating expenses: %w", err)
	}
	defer rows.Close()

	var totals []MonthlyTotal
	for rows.Next() {
		var t MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("error scanning monthly expenses: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// SumPayrollsByMonth aggregates payroll net pay per YYYY-MM month. The
// month column already carries the YYYY-MM string, so the window compares
// lexicographically.
func (r *FinanceRepository) SumPayrollsByMonth(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT month, SUM(net_pay)
		FROM payrolls
		WHERE month BETWEEN $1 AND $2
		GROUP BY month ORDER BY month`,
		from.Format("2006-01"), to.Format("2006-01"))
	if err != nil {
		return nil, fmt.Errorf("error aggregating payrolls: %w", err)
	}
	defer rows.Close()

	var totals []MonthlyTotal
	for rows.Next() {
		var t MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("error scanning monthly payroll: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// CreatePayroll inserts a payroll record. Earnings and deductions are JSONB.
func (r *FinanceRepository) CreatePayroll(ctx context.Context, p *models.Payroll) error {
	earnings, err := json.Marshal(p.Earnings)
	if err != nil {
		return fmt.Errorf("error marshalling earnings: %w", err)
	}
	deductions, err := json.Marshal(p.Deductions)
	if err != nil {
		return fmt.Errorf("error marshalling deductions: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO payrolls (month, trainer_id, earnings, deductions, net_pay, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.Month, p.TrainerID, earnings, deductions, p.NetPay, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "payrolls_trainer_id_month_key") {
			return apperrors.ErrPayrollExists
		}
		return fmt.Errorf("error creating payroll: %w", err)
	}
	return nil
}

func scanPayroll(row pgx.Row) (*models.Payroll, error) {
	p := &models.Payroll{}
	var earnings, deductions []byte
	err := row.Scan(&p.ID, &p.Month, &p.TrainerID, &earnings, &deductions,
		&p.NetPay, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(earnings, &p.Earnings); err != nil {
		return nil, fmt.Errorf("error unmarshalling earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &p.Deductions); err != nil {
		return nil, fmt.Errorf("error unmarshalling deductions: %w", err)
	}
	return p, nil
}

// GetPayrollByID retrieves a payroll record by ID
func (r *FinanceRepository) GetPayrollByID(ctx context.Context, id int64) (*models.Payroll, error) {
	p, err := scanPayroll(r.db.QueryRow(ctx, `
		SELECT id, month, trainer_id, earnings, deductions, net_pay, status, created_at
		FROM payrolls WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("error retrieving payroll: %w", err)
	}
	return p, nil
}

// UpdatePayroll persists the mutable payroll fields
func (r *FinanceRepository) UpdatePayroll(ctx context.Context, p *models.Payroll) error {
	earnings, err := json.Marshal(p.Earnings)
	if err != nil {
		return fmt.Errorf("error marshalling earnings: %w", err)
	}
	deductions, err := json.Marshal(p.Deductions)
	if err != nil {
		return fmt.Errorf("error marshalling deductions: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE payrolls SET earnings = $1, deductions = $2, net_pay = $3, status = $4
		WHERE id = $5`,
		earnings, deductions, p.NetPay, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("error updating payroll: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPayrollNotFound
	}
	return nil
}

// ListPayrolls returns payroll records, optionally filtered by trainer or month
func (r *FinanceRepository) ListPayrolls(ctx context.Context, trainerID *int64, month string, offset uint64, limit int) ([]*models.Payroll, int64, error) {
	base := r.sb.Select("id", "month", "trainer_id", "earnings", "deductions", "net_pay", "status", "created_at").
		From("payrolls")
	countQuery := r.sb.Select("COUNT(*)").From("payrolls")

	if trainerID != nil {
		base = base.Where(squirrel.Eq{"trainer_id": *trainerID})
		countQuery = countQuery.Where(squirrel.Eq{"trainer_id": *trainerID})
	}
	if month != "" {
		base = base.Where(squirrel.Eq{"month": month})
		countQuery = countQuery.Where(squirrel.Eq{"month": month})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build payroll count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting payrolls: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("month DESC", "id").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build payroll list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []*models.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning payroll row: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, total, rows.Err()
}

// CreateReminder logs a fee reminder
func (r *FinanceRepository) CreateReminder(ctx context.Context, rem *models.Reminder) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO reminders (student_id, course_id, batch_id, message, sent_at, sent_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		rem.StudentID, rem.CourseID, rem.BatchID, rem.Message, rem.SentAt,
		rem.SentByID, rem.Status).Scan(&rem.ID)
	if err != nil {
		return fmt.Errorf("error creating reminder: %w", err)
	}
	return nil
}

// GetReminderByID retrieves a reminder by ID
func (r *FinanceRepository) GetReminderByID(ctx context.Context, id int64) (*models.Reminder, error) {
	rem := &models.Reminder{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, course_id, batch_id, message, sent_at, sent_by, status
		FROM reminders WHERE id = $1`, id).
		Scan(&rem.ID, &rem.StudentID, &rem.CourseID, &rem.BatchID, &rem.Message,
			&rem.SentAt, &rem.SentByID, &rem.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving reminder: %w", err)
	}
	return rem, nil
}

// UpdateReminderStatus moves a reminder through pending/sent/failed
func (r *FinanceRepository) UpdateReminderStatus(ctx context.Context, id int64, status models.ReminderStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE reminders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating reminder status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListRemindersByStudent returns a student's reminders, newest first
func (r *FinanceRepository) ListRemindersByStudent(ctx context.Context, studentID int64) ([]*models.Reminder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, course_id, batch_id, message, sent_at, sent_by, status
		FROM reminders WHERE student_id = $1
		ORDER BY sent_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		rem := &models.Reminder{}
		if err := rows.Scan(&rem.ID, &rem.StudentID, &rem.CourseID, &rem.BatchID,
			&rem.Message, &rem.SentAt, &rem.SentByID, &rem.Status); err != nil {
			return nil, fmt.Errorf("error scanning reminder row: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// SumEnrolledCourseFees sums the fees of every course behind a
// non-dropped enrollment, across all students.
func (r *FinanceRepository) SumEnrolledCourseFees(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(c.total_fees), 0)
		FROM enrollments e
		JOIN batches b ON b.id = e.batch_id
		JOIN courses c ON c.id = b.course_id
		WHERE e.status <> 'dropped'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing enrolled course fees: %w", err)
	}
	return total, nil
}

// SumAllReceipts sums every receipt ever posted
func (r *FinanceRepository) SumAllReceipts(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM fees_receipts`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing receipts: %w", err)
	}
	return total, nil
}

// SumFeesOwedByBatch sums the course fee once per non-dropped enrollment
// in the batch.
func (r *FinanceRepository) SumFeesOwedByBatch(ctx context.Context, batchID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(c.total_fees), 0)
		FROM enrollments e
		JOIN batches b ON b.id = e.batch_id
		JOIN courses c ON c.id = b.course_id
		WHERE e.batch_id = $1 AND e.status <> 'dropped'`, batchID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing batch fees owed: %w", err)
	}
	return total, nil
}

// SumFeesOwedByCourse sums the course fee once per non-dropped enrollment
// across all batches of the course.
func (r *FinanceRepository) SumFeesOwedByCourse(ctx context.Context, courseID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(c.total_fees), 0)
		FROM enrollments e
		JOIN batches b ON b.id = e.batch_id
		JOIN courses c ON c.id = b.course_id
		WHERE b.course_id = $1 AND e.status <> 'dropped'`, courseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing course fees owed: %w", err)
	}
	return total, nil
}

// SumReceiptsByBatch sums every receipt posted against the batch
func (r *FinanceRepository) SumReceiptsByBatch(ctx context.Context, batchID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM fees_receipts WHERE batch_id = $1`, batchID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing batch receipts: %w", err)
	}
	return total, nil
}

// SumReceiptsByCourse sums every receipt posted against the course
func (r *FinanceRepository) SumReceiptsByCourse(ctx context.Context, courseID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM fees_receipts WHERE course_id = $1`, courseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing course receipts: %w", err)
	}
	return total, nil
}

// ListReceiptsBetween returns all receipts in a date range, oldest first
func (r *FinanceRepository) ListReceiptsBetween(ctx context.Context, from, to time.Time) ([]*models.FeesReceipt, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+receiptColumns+` FROM fees_receipts
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.FeesReceipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning receipt row: %w", err)
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}

// ListExpensesBetween returns all expenses in a date range, oldest first
func (r *FinanceRepository) ListExpensesBetween(ctx context.Context, from, to time.Time) ([]*models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, date, description, category, amount, added_by
		FROM expenses
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Category, &e.Amount, &e.AddedByID); err != nil {
			return nil, fmt.Errorf("error scanning expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// LastReminderAt returns when the student was last reminded, or zero time
func (r *FinanceRepository) LastReminderAt(ctx context.Context, studentID int64) (time.Time, error) {
	var last time.Time
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(sent_at), 'epoch'::timestamptz)
		FROM reminders WHERE student_id = $1`, studentID).Scan(&last)
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading last reminder time: %w", err)
	}
	return last, nil
}
