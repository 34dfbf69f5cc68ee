package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	StudentRepository      *StudentRepository
	CourseRepository       *CourseRepository
	BatchRepository        *BatchRepository
	AttendanceRepository   *AttendanceRepository
	FinanceRepository      *FinanceRepository
	StockRepository        *StockRepository
	CertificateRepository  *CertificateRepository
	EventRepository        *EventRepository
	MessagingRepository    *MessagingRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		StudentRepository:      NewStudentRepository(db),
		CourseRepository:       NewCourseRepository(db),
		BatchRepository:        NewBatchRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		FinanceRepository:      NewFinanceRepository(db),
		StockRepository:        NewStockRepository(db),
		CertificateRepository:  NewCertificateRepository(db),
		EventRepository:        NewEventRepository(db),
		MessagingRepository:    NewMessagingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
