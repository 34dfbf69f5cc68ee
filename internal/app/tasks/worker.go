// Package tasks runs the background side of the application: the Redis
// task queue consumer that renders PDFs and delivers reminder emails,
// and the daily housekeeping jobs.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/email"
	"github.com/tailorwise/tailorwise/internal/pkg/filestorage"
	"github.com/tailorwise/tailorwise/internal/pkg/pdfgen"
	"github.com/tailorwise/tailorwise/internal/pkg/taskqueue"
)

// Worker consumes tasks from the queue and executes them. A failed task
// is logged and dropped; the API re-enqueues PDF renders on demand.
type Worker struct {
	queue         *taskqueue.Queue
	repos         *repositories.Repositories
	storage       filestorage.FileStorage
	email         email.EmailService
	verifyBaseURL string // Prefix for certificate verification links
	instituteName string
	pollTimeout   time.Duration
	logger        zerolog.Logger
}

// NewWorker creates a new Worker
func NewWorker(
	queue *taskqueue.Queue,
	repos *repositories.Repositories,
	storage filestorage.FileStorage,
	emailService email.EmailService,
	verifyBaseURL string,
	pollTimeout time.Duration,
	logger zerolog.Logger,
) *Worker {
	if pollTimeout <= 0 {
		pollTimeout = 5 * time.Second
	}
	return &Worker{
		queue:         queue,
		repos:         repos,
		storage:       storage,
		email:         emailService,
		verifyBaseURL: verifyBaseURL,
		instituteName: "TailorWise Training Institute",
		pollTimeout:   pollTimeout,
		logger:        logger,
	}
}

// Run polls the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Dur("pollTimeout", w.pollTimeout).Msg("Task worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Task worker stopping")
			return ctx.Err()
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if errors.Is(err, taskqueue.ErrEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error().Err(err).Msg("Failed to dequeue task")
			time.Sleep(time.Second)
			continue
		}

		w.handle(ctx, task)
	}
}

func (w *Worker) handle(ctx context.Context, task *taskqueue.Task) {
	lgr := w.logger.With().Str("taskID", task.ID).Str("kind", task.Kind).Logger()
	lgr.Debug().Msg("Handling task")

	var err error
	switch task.Kind {
	case taskqueue.KindCertificatePDF:
		err = w.handleCertificatePDF(ctx, task)
	case taskqueue.KindReceiptPDF:
		err = w.handleReceiptPDF(ctx, task)
	case taskqueue.KindReminderEmail:
		err = w.handleReminderEmail(ctx, task)
	default:
		lgr.Warn().Msg("Unknown task kind, dropping")
		return
	}

	if err != nil {
		lgr.Error().Err(err).Msg("Task failed")
		return
	}
	lgr.Info().Msg("Task completed")
}

// handleCertificatePDF renders a certificate PDF with its verification QR
// code and stores the path on the certificate row.
func (w *Worker) handleCertificatePDF(ctx context.Context, task *taskqueue.Task) error {
	var payload taskqueue.CertificatePDFPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	cert, err := w.repos.CertificateRepository.GetByID(ctx, payload.CertificateID)
	if err != nil {
		return fmt.Errorf("failed to load certificate %d: %w", payload.CertificateID, err)
	}

	data := pdfgen.CertificateData{
		CertificateNo: cert.CertificateNo,
		IssueDate:     cert.IssueDate,
		Remarks:       cert.Remarks,
		VerifyURL:     w.verifyBaseURL + "/" + cert.QRHash,
		InstituteName: w.instituteName,
	}
	if cert.Student != nil {
		data.RegNo = cert.Student.RegNo
		if cert.Student.User != nil {
			data.StudentName = cert.Student.User.FullName()
		}
	}
	if cert.Course != nil {
		data.CourseName = cert.Course.Title
	}

	pdf, err := pdfgen.Certificate(data)
	if err != nil {
		return err
	}

	path, err := w.storage.SaveBytes(pdf, "certificates", cert.CertificateNo+".pdf")
	if err != nil {
		return fmt.Errorf("failed to store certificate PDF: %w", err)
	}

	return w.repos.CertificateRepository.SetPDFPath(ctx, cert.ID, path)
}

// handleReceiptPDF renders a fee receipt PDF, including the student's
// remaining balance, and stores the path on the receipt row.
func (w *Worker) handleReceiptPDF(ctx context.Context, task *taskqueue.Task) error {
	var payload taskqueue.ReceiptPDFPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	receipt, err := w.repos.FinanceRepository.GetReceiptByID(ctx, payload.ReceiptID)
	if err != nil {
		return fmt.Errorf("failed to load receipt %d: %w", payload.ReceiptID, err)
	}

	student, err := w.repos.StudentRepository.GetStudentByID(ctx, receipt.StudentID)
	if err != nil {
		return fmt.Errorf("failed to load student %d: %w", receipt.StudentID, err)
	}

	data := pdfgen.ReceiptData{
		ReceiptNo:     receipt.ReceiptNo,
		StudentName:   student.User.FullName(),
		RegNo:         student.RegNo,
		Amount:        receipt.Amount,
		Mode:          string(receipt.Mode),
		TxnID:         receipt.TxnID,
		Date:          receipt.Date,
		InstituteName: w.instituteName,
	}

	if receipt.CourseID != nil {
		course, err := w.repos.CourseRepository.GetCourseByID(ctx, *receipt.CourseID)
		if err == nil {
			data.CourseName = course.Title
		}
	}
	if receipt.BatchID != nil {
		batch, err := w.repos.BatchRepository.GetBatchByID(ctx, *receipt.BatchID)
		if err == nil {
			data.BatchCode = batch.Code
		}
	}

	outstanding, err := studentOutstanding(ctx, w.repos, receipt.StudentID)
	if err != nil {
		w.logger.Warn().Err(err).Int64("studentID", receipt.StudentID).
			Msg("Failed to compute outstanding balance for receipt PDF")
	}
	data.Outstanding = outstanding

	pdf, err := pdfgen.Receipt(data)
	if err != nil {
		return err
	}

	path, err := w.storage.SaveBytes(pdf, "receipts", receipt.ReceiptNo+".pdf")
	if err != nil {
		return fmt.Errorf("failed to store receipt PDF: %w", err)
	}

	return w.repos.FinanceRepository.SetReceiptPDFPath(ctx, receipt.ID, path)
}

// studentOutstanding sums the course fees behind the student's non-dropped
// enrollments and subtracts everything paid so far.
func studentOutstanding(ctx context.Context, repos *repositories.Repositories, studentID int64) (float64, error) {
	enrollments, err := repos.BatchRepository.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}

	var totalFees float64
	for _, e := range enrollments {
		if e.Status == models.EnrollmentDropped || e.Batch == nil {
			continue
		}
		course, err := repos.CourseRepository.GetCourseByID(ctx, e.Batch.CourseID)
		if err != nil {
			return 0, err
		}
		totalFees += course.TotalFees
	}

	totalPaid, err := repos.FinanceRepository.SumPaidByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return totalFees - totalPaid, nil
}

// handleReminderEmail delivers a queued fee reminder and records the
// delivery outcome on the reminder row.
func (w *Worker) handleReminderEmail(ctx context.Context, task *taskqueue.Task) error {
	var payload taskqueue.ReminderEmailPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	reminder, err := w.repos.FinanceRepository.GetReminderByID(ctx, payload.ReminderID)
	if err != nil {
		return fmt.Errorf("failed to load reminder %d: %w", payload.ReminderID, err)
	}

	student, err := w.repos.StudentRepository.GetStudentByID(ctx, reminder.StudentID)
	if err != nil {
		return fmt.Errorf("failed to load student %d: %w", reminder.StudentID, err)
	}

	sendErr := w.email.SendFeeReminder(student.User.Email, student.User.FullName(), reminder.Message)

	status := models.ReminderSent
	if sendErr != nil {
		status = models.ReminderFailed
		w.logger.Error().Err(sendErr).Int64("reminderID", reminder.ID).
			Str("email", student.User.Email).Msg("Failed to send fee reminder")
	}

	if err := w.repos.FinanceRepository.UpdateReminderStatus(ctx, reminder.ID, status); err != nil {
		return fmt.Errorf("failed to update reminder status: %w", err)
	}
	return sendErr
}
