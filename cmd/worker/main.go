package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/app/tasks"
	"github.com/tailorwise/tailorwise/internal/bootstrap"
	"github.com/tailorwise/tailorwise/internal/db"
	"github.com/tailorwise/tailorwise/internal/pkg/email"
	"github.com/tailorwise/tailorwise/internal/pkg/filestorage"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
	"github.com/tailorwise/tailorwise/internal/pkg/logger"
)

// The worker process consumes the Redis task queue (PDF rendering,
// reminder emails) and runs the daily housekeeping jobs. It shares the
// database, storage directory and queue with the API process.
func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer database.Close()

	redisClient, queue, err := bootstrap.SetupTaskQueue(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to Redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	// Same storage root and base URL as the API, so stored paths resolve
	// from either process.
	baseURL := "http://localhost:" + cfg.Server.Port
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		os.Exit(1)
	}

	repos := repositories.NewRepositories(database.Pool)

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	verifyBaseURL := baseURL + "/api/v1/verify/certificates"
	pollTimeout := helpers.ParseDuration(cfg.Worker.PollTimeout, 5*time.Second)

	worker := tasks.NewWorker(queue, repos, storage, emailService, verifyBaseURL, pollTimeout, lgr)
	scheduler := tasks.NewScheduler(repos, queue, cfg.Worker.DailyRunHour, lgr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			lgr.Error().Err(err).Msg("Task worker exited with error")
		}
	}()
	go func() {
		defer wg.Done()
		if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
			lgr.Error().Err(err).Msg("Scheduler exited with error")
		}
	}()

	<-ctx.Done()
	lgr.Info().Msg("Shutdown signal received, stopping worker...")
	wg.Wait()
	lgr.Info().Msg("Worker stopped.")
}
