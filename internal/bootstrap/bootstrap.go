package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/tailorwise/tailorwise/internal/app/auth"
	appControllers "github.com/tailorwise/tailorwise/internal/app/controllers"
	appMigrations "github.com/tailorwise/tailorwise/internal/app/migrations"
	appRepos "github.com/tailorwise/tailorwise/internal/app/repositories"
	appRoutes "github.com/tailorwise/tailorwise/internal/app/routes"
	appServices "github.com/tailorwise/tailorwise/internal/app/services"
	"github.com/tailorwise/tailorwise/internal/config"
	"github.com/tailorwise/tailorwise/internal/db"
	appMiddleware "github.com/tailorwise/tailorwise/internal/middleware"
	pkgAuth "github.com/tailorwise/tailorwise/internal/pkg/auth"
	"github.com/tailorwise/tailorwise/internal/pkg/filestorage"
	"github.com/tailorwise/tailorwise/internal/pkg/helpers"
	"github.com/tailorwise/tailorwise/internal/pkg/logger"
	"github.com/tailorwise/tailorwise/internal/pkg/taskqueue"
	"github.com/tailorwise/tailorwise/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	FileStorage    *filestorage.LocalStorage
	Queue          *taskqueue.Queue
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupTaskQueue connects to Redis and wraps it in the task queue the API
// enqueues background work onto.
func SetupTaskQueue(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, *taskqueue.Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		return nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection successfully established.")

	return client, taskqueue.NewQueue(client, cfg.Redis.QueueKey), nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, queue *taskqueue.Queue, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Queue: queue}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves student photos and generated PDFs under /uploads
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.BatchRepository,
	)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, queue, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.Services.AuthService, deps.Services.UserService, lgr),
		User:         appControllers.NewUserController(deps.Services.UserService, lgr),
		Enquiry:      appControllers.NewEnquiryController(deps.Services.StudentService, lgr),
		Student:      appControllers.NewStudentController(deps.Services.StudentService, deps.Services.BatchService, deps.AuthzService, lgr),
		Course:       appControllers.NewCourseController(deps.Services.CourseService, lgr),
		Batch:        appControllers.NewBatchController(deps.Services.BatchService, lgr),
		Attendance:   appControllers.NewAttendanceController(deps.Services.AttendanceService, deps.AuthzService, lgr),
		Finance:      appControllers.NewFinanceController(deps.Services.FinanceService, deps.AuthzService, lgr),
		Inventory:    appControllers.NewInventoryController(deps.Services.InventoryService, lgr),
		Certificate:  appControllers.NewCertificateController(deps.Services.CertificateService, deps.AuthzService, lgr),
		Event:        appControllers.NewEventController(deps.Services.EventService, lgr),
		Messaging:    appControllers.NewMessagingController(deps.Services.MessagingService, lgr),
		Notification: appControllers.NewNotificationController(deps.Services.NotificationService, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	appRoutes.SetupSwagger(router)

	return router
}
