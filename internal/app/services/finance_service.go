package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
	"github.com/tailorwise/tailorwise/internal/pkg/report"
	"github.com/tailorwise/tailorwise/internal/pkg/taskqueue"
	"github.com/tailorwise/tailorwise/internal/pkg/validation"
)

// reminderBackoff is how long a student is left alone after a fee reminder
const reminderBackoff = 7 * 24 * time.Hour

// reminderRecentlySent reports whether a reminder sent at last still falls
// inside the backoff window at now. A zero last means never reminded.
func reminderRecentlySent(last, now time.Time) bool {
	return now.Sub(last) < reminderBackoff
}

// FinanceService handles receipts, expenses, payroll and fee reminders
type FinanceService struct {
	financeRepo *repositories.FinanceRepository
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
	batchRepo   *repositories.BatchRepository
	queue       *taskqueue.Queue
	logger      zerolog.Logger
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(
	financeRepo *repositories.FinanceRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	batchRepo *repositories.BatchRepository,
	queue *taskqueue.Queue,
	logger zerolog.Logger,
) *FinanceService {
	return &FinanceService{
		financeRepo: financeRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		batchRepo:   batchRepo,
		queue:       queue,
		logger:      logger,
	}
}

// CreateReceipt posts a fee payment and queues its PDF generation
func (s *FinanceService) CreateReceipt(ctx context.Context, postedByUserID int64, req *dto.CreateReceiptRequest) (*models.FeesReceipt, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if req.CourseID != nil {
		if _, err := s.courseRepo.GetCourseByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}
	if req.BatchID != nil {
		if _, err := s.batchRepo.GetBatchByID(ctx, *req.BatchID); err != nil {
			return nil, err
		}
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	seq, err := s.financeRepo.NextReceiptSequence(ctx, date.Year())
	if err != nil {
		return nil, err
	}

	receipt := &models.FeesReceipt{
		ReceiptNo:  models.FormatReceiptNo(date.Year(), seq),
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		BatchID:    req.BatchID,
		Amount:     req.Amount,
		Mode:       models.PaymentMode(req.Mode),
		TxnID:      req.TxnID,
		Date:       date,
		PostedByID: &postedByUserID,
	}
	if err := s.financeRepo.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("receiptID", receipt.ID).Str("receiptNo", receipt.ReceiptNo).
		Float64("amount", receipt.Amount).Msg("Receipt posted")

	s.enqueue(ctx, taskqueue.KindReceiptPDF, taskqueue.ReceiptPDFPayload{ReceiptID: receipt.ID})
	s.checkStillOverdue(ctx, receipt, postedByUserID)
	return receipt, nil
}

// checkStillOverdue queues a follow-up reminder when a payment leaves a
// balance behind and the student was not reminded recently. Failures are
// logged; the receipt itself has already been posted.
func (s *FinanceService) checkStillOverdue(ctx context.Context, receipt *models.FeesReceipt, postedByUserID int64) {
	outstanding, err := s.StudentOutstanding(ctx, receipt.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", receipt.StudentID).
			Msg("Overdue check skipped: failed to compute outstanding balance")
		return
	}
	if outstanding.Outstanding <= 0 {
		return
	}

	last, err := s.financeRepo.LastReminderAt(ctx, receipt.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", receipt.StudentID).
			Msg("Overdue check skipped: failed to read reminder history")
		return
	}
	if reminderRecentlySent(last, time.Now()) {
		return
	}

	reminder := &models.Reminder{
		StudentID: receipt.StudentID,
		CourseID:  receipt.CourseID,
		BatchID:   receipt.BatchID,
		Message: fmt.Sprintf("Thank you for your payment of %.2f. A balance of %.2f is still outstanding.",
			receipt.Amount, outstanding.Outstanding),
		SentAt:   time.Now(),
		SentByID: &postedByUserID,
		Status:   models.ReminderPending,
	}
	if err := s.financeRepo.CreateReminder(ctx, reminder); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", receipt.StudentID).
			Msg("Failed to log follow-up reminder")
		return
	}
	s.enqueue(ctx, taskqueue.KindReminderEmail, taskqueue.ReminderEmailPayload{ReminderID: reminder.ID})
}

// GetReceipt retrieves a receipt by ID
func (s *FinanceService) GetReceipt(ctx context.Context, id int64) (*models.FeesReceipt, error) {
	return s.financeRepo.GetReceiptByID(ctx, id)
}

// UpdateReceipt applies the non-nil fields. Locked receipts reject edits.
func (s *FinanceService) UpdateReceipt(ctx context.Context, id int64, req *dto.UpdateReceiptRequest) (*models.FeesReceipt, error) {
	receipt, err := s.financeRepo.GetReceiptByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !receipt.IsEditable() {
		return nil, apperrors.ErrReceiptLocked
	}

	if req.Amount != nil {
		receipt.Amount = *req.Amount
	}
	if req.Mode != nil {
		receipt.Mode = models.PaymentMode(*req.Mode)
	}
	if req.TxnID != nil {
		receipt.TxnID = *req.TxnID
	}
	if req.Date != nil {
		receipt.Date = *req.Date
	}

	if err := s.financeRepo.UpdateReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	// The stored PDF no longer matches the receipt
	s.enqueue(ctx, taskqueue.KindReceiptPDF, taskqueue.ReceiptPDFPayload{ReceiptID: receipt.ID})
	return receipt, nil
}

// DeleteReceipt removes an unlocked receipt
func (s *FinanceService) DeleteReceipt(ctx context.Context, id int64) error {
	receipt, err := s.financeRepo.GetReceiptByID(ctx, id)
	if err != nil {
		return err
	}
	if !receipt.IsEditable() {
		return apperrors.ErrReceiptLocked
	}
	return s.financeRepo.DeleteReceipt(ctx, id)
}

// SetReceiptLock locks or unlocks a receipt against further edits
func (s *FinanceService) SetReceiptLock(ctx context.Context, id int64, locked bool) (*models.FeesReceipt, error) {
	receipt, err := s.financeRepo.GetReceiptByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.Locked == locked {
		return receipt, nil
	}
	if err := s.financeRepo.SetReceiptLocked(ctx, id, locked); err != nil {
		return nil, err
	}
	receipt.Locked = locked
	return receipt, nil
}

// ListReceipts retrieves receipts matching the filter
func (s *FinanceService) ListReceipts(ctx context.Context, filter *dto.ReceiptFilterRequest) ([]*models.FeesReceipt, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	receipts, total, err := s.financeRepo.ListReceipts(ctx, filter.StudentID, filter.BatchID,
		filter.Mode, filter.From, filter.To, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return receipts, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// StudentOutstanding computes what a student still owes: the summed fees
// of the courses behind their non-dropped enrollments, minus all payments.
func (s *FinanceService) StudentOutstanding(ctx context.Context, studentID int64) (*dto.StudentOutstandingResponse, error) {
	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.batchRepo.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var totalFees float64
	for _, e := range enrollments {
		if e.Status == models.EnrollmentDropped || e.Batch == nil {
			continue
		}
		course, err := s.courseRepo.GetCourseByID(ctx, e.Batch.CourseID)
		if err != nil {
			return nil, err
		}
		totalFees += course.TotalFees
	}

	totalPaid, err := s.financeRepo.SumPaidByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentOutstandingResponse{
		StudentID:   studentID,
		RegNo:       student.RegNo,
		TotalFees:   totalFees,
		TotalPaid:   totalPaid,
		Outstanding: totalFees - totalPaid,
	}, nil
}

// newOutstanding folds a scope's fee and payment totals into the response.
// Outstanding may go negative when a scope is overpaid.
func newOutstanding(scope string, scopeID *int64, totalFees, totalPaid float64) *dto.OutstandingResponse {
	return &dto.OutstandingResponse{
		Scope:       scope,
		ScopeID:     scopeID,
		TotalFees:   totalFees,
		TotalPaid:   totalPaid,
		Outstanding: totalFees - totalPaid,
	}
}

// BatchOutstanding returns the fee position of one batch
func (s *FinanceService) BatchOutstanding(ctx context.Context, batchID int64) (*dto.OutstandingResponse, error) {
	if _, err := s.batchRepo.GetBatchByID(ctx, batchID); err != nil {
		return nil, err
	}

	owed, err := s.financeRepo.SumFeesOwedByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	paid, err := s.financeRepo.SumReceiptsByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return newOutstanding("batch", &batchID, owed, paid), nil
}

// CourseOutstanding returns the fee position of one course across all its
// batches.
func (s *FinanceService) CourseOutstanding(ctx context.Context, courseID int64) (*dto.OutstandingResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	owed, err := s.financeRepo.SumFeesOwedByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	paid, err := s.financeRepo.SumReceiptsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return newOutstanding("course", &courseID, owed, paid), nil
}

// OverallOutstanding returns the institute-wide fee position
func (s *FinanceService) OverallOutstanding(ctx context.Context) (*dto.OutstandingResponse, error) {
	owed, err := s.financeRepo.SumEnrolledCourseFees(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := s.financeRepo.SumAllReceipts(ctx)
	if err != nil {
		return nil, err
	}
	return newOutstanding("overall", nil, owed, paid), nil
}

// CourseRevenue sums every receipt posted against a course
func (s *FinanceService) CourseRevenue(ctx context.Context, courseID int64) (*dto.CourseRevenueResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.financeRepo.SumReceiptsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &dto.CourseRevenueResponse{
		CourseID: course.ID,
		Code:     course.Code,
		Title:    course.Title,
		Revenue:  revenue,
	}, nil
}

// CreateExpense records an operational expense
func (s *FinanceService) CreateExpense(ctx context.Context, addedByUserID int64, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	expense := &models.Expense{
		Date:        date,
		Description: req.Description,
		Category:    models.ExpenseCategory(req.Category),
		Amount:      req.Amount,
		AddedByID:   &addedByUserID,
	}
	if err := s.financeRepo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *FinanceService) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	return s.financeRepo.GetExpenseByID(ctx, id)
}

// UpdateExpense applies the non-nil fields of the request
func (s *FinanceService) UpdateExpense(ctx context.Context, id int64, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.financeRepo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		expense.Category = models.ExpenseCategory(*req.Category)
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}

	if err := s.financeRepo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense
func (s *FinanceService) DeleteExpense(ctx context.Context, id int64) error {
	return s.financeRepo.DeleteExpense(ctx, id)
}

// ListExpenses retrieves expenses matching the filter
func (s *FinanceService) ListExpenses(ctx context.Context, filter *dto.ExpenseFilterRequest) ([]*models.Expense, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	expenses, total, err := s.financeRepo.ListExpenses(ctx, filter.Category, filter.From, filter.To, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return expenses, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// CreatePayroll creates a trainer's payroll record for one month. When no
// earnings are given the trainer's base salary is used.
func (s *FinanceService) CreatePayroll(ctx context.Context, req *dto.CreatePayrollRequest) (*models.Payroll, error) {
	if !validation.IsValidMonth(req.Month) {
		return nil, apperrors.ErrInvalidMonth
	}

	trainer, err := s.courseRepo.GetTrainerByID(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}

	earnings := req.Earnings
	if len(earnings) == 0 {
		earnings = map[string]float64{"basic": trainer.Salary}
	}
	deductions := req.Deductions
	if deductions == nil {
		deductions = map[string]float64{}
	}

	payroll := &models.Payroll{
		Month:      req.Month,
		TrainerID:  req.TrainerID,
		Earnings:   earnings,
		Deductions: deductions,
		NetPay:     computeNetPay(earnings, deductions),
		Status:     models.PayrollPending,
	}
	if err := s.financeRepo.CreatePayroll(ctx, payroll); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("payrollID", payroll.ID).Str("month", payroll.Month).
		Float64("netPay", payroll.NetPay).Msg("Payroll created")
	return payroll, nil
}

// GetPayroll retrieves a payroll record by ID
func (s *FinanceService) GetPayroll(ctx context.Context, id int64) (*models.Payroll, error) {
	return s.financeRepo.GetPayrollByID(ctx, id)
}

// UpdatePayroll applies the non-nil fields; net pay is recomputed
func (s *FinanceService) UpdatePayroll(ctx context.Context, id int64, req *dto.UpdatePayrollRequest) (*models.Payroll, error) {
	payroll, err := s.financeRepo.GetPayrollByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Earnings != nil {
		payroll.Earnings = req.Earnings
	}
	if req.Deductions != nil {
		payroll.Deductions = req.Deductions
	}
	if req.Status != nil {
		payroll.Status = models.PayrollStatus(*req.Status)
	}
	payroll.NetPay = computeNetPay(payroll.Earnings, payroll.Deductions)

	if err := s.financeRepo.UpdatePayroll(ctx, payroll); err != nil {
		return nil, err
	}
	return payroll, nil
}

// ListPayrolls retrieves payroll records matching the filter
func (s *FinanceService) ListPayrolls(ctx context.Context, trainerID *int64, month string, page, pageSize int) ([]*models.Payroll, dto.PaginationInfo, error) {
	if month != "" && !validation.IsValidMonth(month) {
		return nil, dto.PaginationInfo{}, apperrors.ErrInvalidMonth
	}
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	payrolls, total, err := s.financeRepo.ListPayrolls(ctx, trainerID, month, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return payrolls, helpers.NewPaginationInfo(total, page, limit), nil
}

// SendReminder logs a fee reminder and queues its delivery. A student is
// not reminded again within the backoff window.
func (s *FinanceService) SendReminder(ctx context.Context, studentID, sentByUserID int64, req *dto.SendReminderRequest) (*models.Reminder, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	last, err := s.financeRepo.LastReminderAt(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if reminderRecentlySent(last, time.Now()) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("student was already reminded on %s", last.Format("2006-01-02")))
	}

	reminder := &models.Reminder{
		StudentID: studentID,
		CourseID:  req.CourseID,
		BatchID:   req.BatchID,
		Message:   req.Message,
		SentAt:    time.Now(),
		SentByID:  &sentByUserID,
		Status:    models.ReminderPending,
	}
	if err := s.financeRepo.CreateReminder(ctx, reminder); err != nil {
		return nil, err
	}

	s.enqueue(ctx, taskqueue.KindReminderEmail, taskqueue.ReminderEmailPayload{ReminderID: reminder.ID})
	return reminder, nil
}

// ListStudentReminders returns a student's reminder history
func (s *FinanceService) ListStudentReminders(ctx context.Context, studentID int64) ([]*models.Reminder, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.financeRepo.ListRemindersByStudent(ctx, studentID)
}

// mergeMonthlyFinance folds the per-month income, expense and payroll
// aggregates into one sorted timeline. Paid-out salaries count as expenses,
// so a month's net is income minus expenses minus payroll.
func mergeMonthlyFinance(income, expenses, payrolls []repositories.MonthlyTotal) []dto.MonthlyFinanceSummary {
	byMonth := make(map[string]*dto.MonthlyFinanceSummary)
	month := func(key string) *dto.MonthlyFinanceSummary {
		m, ok := byMonth[key]
		if !ok {
			m = &dto.MonthlyFinanceSummary{Month: key}
			byMonth[key] = m
		}
		return m
	}
	for _, t := range income {
		month(t.Month).Income += t.Total
	}
	for _, t := range expenses {
		month(t.Month).Expenses += t.Total
	}
	for _, t := range payrolls {
		month(t.Month).Expenses += t.Total
	}

	monthly := make([]dto.MonthlyFinanceSummary, 0, len(byMonth))
	for _, m := range byMonth {
		m.Net = m.Income - m.Expenses
		monthly = append(monthly, *m)
	}
	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].Month < monthly[j].Month
	})
	return monthly
}

// Summary aggregates income, expenses (payroll included) and outstanding
// fees for a period.
func (s *FinanceService) Summary(ctx context.Context, from, to time.Time) (*dto.FinanceSummaryResponse, error) {
	income, err := s.financeRepo.SumReceiptsByMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.financeRepo.SumExpensesByMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payrolls, err := s.financeRepo.SumPayrollsByMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.FinanceSummaryResponse{
		Monthly: mergeMonthlyFinance(income, expenses, payrolls),
	}
	for _, m := range resp.Monthly {
		resp.TotalIncome += m.Income
		resp.TotalExpenses += m.Expenses
	}

	totalFees, err := s.financeRepo.SumEnrolledCourseFees(ctx)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.financeRepo.SumAllReceipts(ctx)
	if err != nil {
		return nil, err
	}
	resp.TotalOutstanding = totalFees - totalPaid

	return resp, nil
}

// ExportFinance builds an XLSX workbook of receipts and expenses in a period
func (s *FinanceService) ExportFinance(ctx context.Context, from, to time.Time) (*bytes.Buffer, string, error) {
	receipts, err := s.financeRepo.ListReceiptsBetween(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	expenses, err := s.financeRepo.ListExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	rows := make([]report.FinanceRow, 0, len(receipts)+len(expenses))
	for _, rc := range receipts {
		rows = append(rows, report.FinanceRow{
			Date:        rc.Date,
			Kind:        "income",
			Reference:   rc.ReceiptNo,
			Description: fmt.Sprintf("Fee payment (%s)", rc.Mode),
			Amount:      rc.Amount,
		})
	}
	for _, e := range expenses {
		rows = append(rows, report.FinanceRow{
			Date:        e.Date,
			Kind:        "expense",
			Reference:   string(e.Category),
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	buf, err := report.FinanceWorkbook(from, to, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("finance-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	return buf, filename, nil
}

// enqueue pushes a background task, logging instead of failing the request
func (s *FinanceService) enqueue(ctx context.Context, kind string, payload interface{}) {
	if s.queue == nil {
		return
	}
	if _, err := s.queue.Enqueue(ctx, kind, payload); err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("Failed to enqueue background task")
	}
}

// computeNetPay is total earnings minus total deductions
func computeNetPay(earnings, deductions map[string]float64) float64 {
	var net float64
	for _, v := range earnings {
		net += v
	}
	for _, v := range deductions {
		net -= v
	}
	return net
}
