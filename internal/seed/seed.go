package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/tailorwise/tailorwise/internal/app/models"
	appRepos "github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// CreateDefaultData creates the default admin account and a starter course
// catalog on first run. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error // Collect errors without stopping the process

	// --- Default Admin User --- //
	exists, err := userRepo.UsernameExists(ctx, "admin")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Username:  "admin",
				Email:     "admin@tailorwise.local",
				Password:  string(hashedPassword),
				FirstName: "System",
				LastName:  "Administrator",
				RoleType:  appModels.RoleAdmin,
				IsActive:  true,
			}

			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	// --- Starter Course Catalog --- //
	defaultCourses := []*appModels.Course{
		{
			Code:                   "TAIL-101",
			Title:                  "Basic Tailoring",
			DurationWeeks:          12,
			TotalFees:              6000,
			RequiredAttendanceDays: 48,
			Active:                 true,
		},
		{
			Code:                   "TAIL-201",
			Title:                  "Advanced Tailoring",
			DurationWeeks:          24,
			TotalFees:              12000,
			RequiredAttendanceDays: 96,
			Active:                 true,
		},
		{
			Code:                   "EMB-101",
			Title:                  "Embroidery Basics",
			DurationWeeks:          8,
			TotalFees:              4000,
			RequiredAttendanceDays: 32,
			Active:                 true,
		},
	}

	for _, course := range defaultCourses {
		err := courseRepo.CreateCourse(ctx, course)
		if err != nil && !errors.Is(err, apperrors.ErrCourseCodeExists) {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
