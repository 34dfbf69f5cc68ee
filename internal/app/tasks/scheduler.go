package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/taskqueue"
)

// sweepBackoff is how long a student is left alone after a fee reminder
// before the daily sweep may remind them again.
const sweepBackoff = 7 * 24 * time.Hour

// feePendingTitle is the dedup key for the first-payment warning; a user
// gets this notification at most once.
const feePendingTitle = "Fee payment pending"

// Scheduler runs the daily housekeeping jobs: trainer notifications for
// batches starting the next day, the overdue-fee sweep, and refresh token
// cleanup.
type Scheduler struct {
	repos   *repositories.Repositories
	queue   *taskqueue.Queue
	runHour int // Local hour of day the jobs run at
	logger  zerolog.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(repos *repositories.Repositories, queue *taskqueue.Queue, runHour int, logger zerolog.Logger) *Scheduler {
	if runHour < 0 || runHour > 23 {
		runHour = 6
	}
	return &Scheduler{
		repos:   repos,
		queue:   queue,
		runHour: runHour,
		logger:  logger,
	}
}

// Run executes the daily jobs once at startup, then once every day at the
// configured hour, until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().Int("runHour", s.runHour).Msg("Daily scheduler started")

	s.runOnce(ctx)

	for {
		timer := time.NewTimer(time.Until(s.nextRun(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("Daily scheduler stopping")
			return ctx.Err()
		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

// nextRun returns the next occurrence of the configured hour after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.runHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.notifyUpcomingBatches(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Upcoming batch notification job failed")
	}
	if err := s.sweepFees(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Fee sweep job failed")
	}
	if err := s.cleanupTokens(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Token cleanup job failed")
	}
}

// notifyUpcomingBatches notifies each assigned trainer about batches
// starting tomorrow.
func (s *Scheduler) notifyUpcomingBatches(ctx context.Context) error {
	tomorrow := time.Now().AddDate(0, 0, 1)

	batches, err := s.repos.BatchRepository.ListBatchesStartingOn(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("failed to list batches starting tomorrow: %w", err)
	}

	for _, batch := range batches {
		if batch.TrainerID == nil {
			s.logger.Warn().Str("batchCode", batch.Code).Msg("Batch starting tomorrow has no trainer assigned")
			continue
		}

		trainer, err := s.repos.CourseRepository.GetTrainerByID(ctx, *batch.TrainerID)
		if err != nil {
			s.logger.Error().Err(err).Int64("trainerID", *batch.TrainerID).
				Str("batchCode", batch.Code).Msg("Failed to load trainer for batch notification")
			continue
		}

		notification := &models.Notification{
			UserID: trainer.UserID,
			Title:  "Batch starting tomorrow",
			Message: fmt.Sprintf("Batch %s starts tomorrow (%s).",
				batch.Code, batch.StartDate.Format("2 January 2006")),
			Level: models.NotificationInfo,
		}
		if err := s.repos.NotificationRepository.Create(ctx, notification); err != nil {
			s.logger.Error().Err(err).Str("batchCode", batch.Code).
				Msg("Failed to create batch start notification")
			continue
		}
		s.logger.Info().Str("batchCode", batch.Code).Int64("trainerUserID", trainer.UserID).
			Msg("Trainer notified of upcoming batch")
	}

	return nil
}

// sweepFees walks all active students and, for those with an outstanding
// balance, warns first-time non-payers and queues reminder emails. A
// student reminded within the backoff window is skipped.
func (s *Scheduler) sweepFees(ctx context.Context) error {
	const pageSize = 100
	active := true

	for page := 1; ; page++ {
		offset := uint64((page - 1) * pageSize)
		students, total, err := s.repos.StudentRepository.ListStudents(ctx, nil, &active, "", offset, pageSize)
		if err != nil {
			return fmt.Errorf("failed to list active students: %w", err)
		}

		for _, student := range students {
			if err := s.sweepStudent(ctx, student); err != nil {
				s.logger.Error().Err(err).Int64("studentID", student.ID).
					Str("regNo", student.RegNo).Msg("Fee sweep failed for student")
			}
		}

		if int64(page*pageSize) >= total || len(students) == 0 {
			return nil
		}
	}
}

func (s *Scheduler) sweepStudent(ctx context.Context, student *models.Student) error {
	outstanding, err := studentOutstanding(ctx, s.repos, student.ID)
	if err != nil {
		return err
	}
	if outstanding <= 0 {
		return nil
	}

	paid, err := s.repos.FinanceRepository.SumPaidByStudent(ctx, student.ID)
	if err != nil {
		return err
	}
	if paid == 0 {
		if err := s.warnFeePending(ctx, student, outstanding); err != nil {
			return err
		}
	}

	last, err := s.repos.FinanceRepository.LastReminderAt(ctx, student.ID)
	if err != nil {
		return err
	}
	if time.Since(last) < sweepBackoff {
		return nil
	}

	reminder := &models.Reminder{
		StudentID: student.ID,
		Message: fmt.Sprintf("This is a reminder that a fee balance of %.2f is outstanding on your account. "+
			"Please arrange payment at the office.", outstanding),
		SentAt: time.Now(),
		Status: models.ReminderPending,
	}
	if err := s.repos.FinanceRepository.CreateReminder(ctx, reminder); err != nil {
		return err
	}

	if _, err := s.queue.Enqueue(ctx, taskqueue.KindReminderEmail,
		taskqueue.ReminderEmailPayload{ReminderID: reminder.ID}); err != nil {
		return fmt.Errorf("failed to enqueue reminder email: %w", err)
	}

	s.logger.Info().Int64("studentID", student.ID).Float64("outstanding", outstanding).
		Msg("Overdue fee reminder queued")
	return nil
}

// warnFeePending creates a one-time notification for students who have not
// made any payment yet.
func (s *Scheduler) warnFeePending(ctx context.Context, student *models.Student, outstanding float64) error {
	exists, err := s.repos.NotificationRepository.ExistsWithTitle(ctx, student.UserID, feePendingTitle)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.repos.NotificationRepository.Create(ctx, &models.Notification{
		UserID: student.UserID,
		Title:  feePendingTitle,
		Message: fmt.Sprintf("Your first fee payment of %.2f is pending. "+
			"Please visit the office to complete it.", outstanding),
		Level: models.NotificationWarning,
	})
}

// cleanupTokens removes expired refresh tokens and stale revoked ones.
func (s *Scheduler) cleanupTokens(ctx context.Context) error {
	deleted, err := s.repos.TokenRepository.CleanupExpiredTokens(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("Expired refresh tokens cleaned up")
	}
	return nil
}
