package services

import (
	"github.com/rs/zerolog"

	"github.com/tailorwise/tailorwise/internal/app/repositories"
	"github.com/tailorwise/tailorwise/internal/pkg/auth"
	"github.com/tailorwise/tailorwise/internal/pkg/filestorage"
	"github.com/tailorwise/tailorwise/internal/pkg/taskqueue"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	UserService         *UserService
	StudentService      *StudentService
	CourseService       *CourseService
	BatchService        *BatchService
	AttendanceService   *AttendanceService
	FinanceService      *FinanceService
	InventoryService    *InventoryService
	CertificateService  *CertificateService
	EventService        *EventService
	MessagingService    *MessagingService
	NotificationService *NotificationService
}

// NewServices initializes all services over the shared repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	queue *taskqueue.Queue,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger),
		UserService: NewUserService(repos.UserRepository, repos.TokenRepository, logger),
		StudentService: NewStudentService(repos.StudentRepository, repos.BatchRepository,
			repos.UserRepository, storage, logger),
		CourseService: NewCourseService(repos.CourseRepository, repos.UserRepository, logger),
		BatchService: NewBatchService(repos.BatchRepository, repos.CourseRepository,
			repos.StudentRepository, logger),
		AttendanceService: NewAttendanceService(repos.AttendanceRepository, repos.BatchRepository,
			repos.CourseRepository, repos.StudentRepository, repos.NotificationRepository, logger),
		FinanceService: NewFinanceService(repos.FinanceRepository, repos.StudentRepository,
			repos.CourseRepository, repos.BatchRepository, queue, logger),
		InventoryService: NewInventoryService(repos.StockRepository, logger),
		CertificateService: NewCertificateService(repos.CertificateRepository, repos.StudentRepository,
			repos.CourseRepository, repos.BatchRepository, storage, queue, logger),
		EventService:        NewEventService(repos.EventRepository, logger),
		MessagingService:    NewMessagingService(repos.MessagingRepository, repos.StudentRepository, logger),
		NotificationService: NewNotificationService(repos.NotificationRepository, repos.UserRepository, logger),
	}
}
