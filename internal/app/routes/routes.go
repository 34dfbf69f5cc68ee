package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tailorwise/tailorwise/internal/app/controllers"
	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/middleware"
)

// Controllers bundles everything SetupRouter wires up
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Enquiry      *controllers.EnquiryController
	Student      *controllers.StudentController
	Course       *controllers.CourseController
	Batch        *controllers.BatchController
	Attendance   *controllers.AttendanceController
	Finance      *controllers.FinanceController
	Inventory    *controllers.InventoryController
	Certificate  *controllers.CertificateController
	Event        *controllers.EventController
	Messaging    *controllers.MessagingController
	Notification *controllers.NotificationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// Certificate verification is public: it sits behind the QR code on
	// printed certificates.
	v1.GET("/verify/certificates/:qrHash", c.Certificate.Verify)

	// Enquiry submission is public so the website contact form can post
	// directly; the rest of the funnel is staff-only.
	v1.POST("/enquiries", c.Enquiry.CreateEnquiry)

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Staff-only routes (back-office roles)
	staff := authenticated.Group("")
	staff.Use(authMiddleware.StaffRequired())

	// Admin-only routes
	admin := authenticated.Group("")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))

	// Auth session management
	authenticated.POST("/auth/logout", c.Auth.Logout)
	authenticated.POST("/auth/change-password", c.Auth.ChangePassword)
	authenticated.GET("/auth/me", c.Auth.Me)

	// Account administration
	users := admin.Group("/users")
	{
		users.POST("", c.User.CreateUser)
		users.GET("", c.User.ListUsers)
		users.GET("/:id", c.User.GetUser)
		users.PUT("/:id", c.User.UpdateUser)
		users.DELETE("/:id", c.User.DeleteUser)
	}

	// Admission funnel
	enquiries := staff.Group("/enquiries")
	{
		enquiries.GET("", c.Enquiry.ListEnquiries)
		enquiries.GET("/:id", c.Enquiry.GetEnquiry)
		enquiries.PUT("/:id", c.Enquiry.UpdateEnquiry)
		enquiries.DELETE("/:id", c.Enquiry.DeleteEnquiry)
		enquiries.POST("/:id/convert", c.Enquiry.ConvertEnquiry)
	}

	// Students: the self-service profile first, then the staff surface.
	// Record-level reads check ownership in the controller so a student
	// can fetch their own data.
	authenticated.GET("/students/me", c.Student.GetMyProfile)
	authenticated.PUT("/students/me", c.Student.UpdateMyProfile)
	authenticated.GET("/students/:id", c.Student.GetStudent)
	authenticated.GET("/students/:id/measurements", c.Student.ListMeasurements)
	authenticated.GET("/students/:id/enrollments", c.Student.ListEnrollments)
	authenticated.GET("/students/:id/attendance", c.Attendance.StudentSummary)
	authenticated.GET("/students/:id/outstanding", c.Finance.StudentOutstanding)

	students := staff.Group("/students")
	{
		students.POST("", c.Student.CreateStudent)
		students.GET("", c.Student.ListStudents)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
		students.POST("/:id/photo", c.Student.UploadPhoto)
		students.POST("/:id/measurements", c.Student.AddMeasurement)
		students.POST("/:id/reminders", c.Finance.SendReminder)
		students.GET("/:id/reminders", c.Finance.ListStudentReminders)
		students.POST("/:id/messages", c.Messaging.SendToStudent)
	}

	// Individual measurement records, addressed flat like enrollments
	measurements := staff.Group("/measurements")
	{
		measurements.GET("/:id", c.Student.GetMeasurement)
		measurements.PUT("/:id", c.Student.UpdateMeasurement)
		measurements.DELETE("/:id", c.Student.DeleteMeasurement)
	}

	// Course catalog
	authenticated.GET("/courses", c.Course.ListCourses)
	authenticated.GET("/courses/:id", c.Course.GetCourse)
	courses := staff.Group("/courses")
	{
		courses.POST("", c.Course.CreateCourse)
		courses.PUT("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
	}

	// Trainers
	trainers := staff.Group("/trainers")
	{
		trainers.POST("", c.Course.CreateTrainer)
		trainers.GET("", c.Course.ListTrainers)
		trainers.GET("/:id", c.Course.GetTrainer)
		trainers.PUT("/:id", c.Course.UpdateTrainer)
	}

	// Batches. Attendance recording is open to trainers for their own
	// batches; the controller enforces that.
	authenticated.GET("/batches", c.Batch.ListBatches)
	authenticated.GET("/batches/:id", c.Batch.GetBatch)
	authenticated.GET("/batches/:id/attendance", c.Attendance.ListBatchAttendance)
	authenticated.GET("/batches/:id/attendance/summary", c.Attendance.BatchSummary)
	authenticated.GET("/batches/:id/attendance/timeline", c.Attendance.BatchTimeline)
	authenticated.POST("/batches/:id/attendance", c.Attendance.RecordAttendance)
	batches := staff.Group("/batches")
	{
		batches.POST("", c.Batch.CreateBatch)
		batches.PUT("/:id", c.Batch.UpdateBatch)
		batches.DELETE("/:id", c.Batch.DeleteBatch)
		batches.POST("/:id/enroll", c.Batch.EnrollStudent)
		batches.GET("/:id/enrollments", c.Batch.ListEnrollments)
		batches.GET("/:id/attendance/export", c.Attendance.ExportBatchAttendance)
	}
	staff.PUT("/enrollments/:id", c.Batch.UpdateEnrollment)

	// Attendance sheets
	authenticated.GET("/attendance/:id", c.Attendance.GetSheet)
	authenticated.PUT("/attendance/:id", c.Attendance.UpdateSheet)
	staff.DELETE("/attendance/:id", c.Attendance.DeleteSheet)

	// Finance
	receipts := staff.Group("/receipts")
	{
		receipts.POST("", c.Finance.CreateReceipt)
		receipts.GET("", c.Finance.ListReceipts)
		receipts.GET("/:id", c.Finance.GetReceipt)
		receipts.PUT("/:id", c.Finance.UpdateReceipt)
		receipts.DELETE("/:id", c.Finance.DeleteReceipt)
		receipts.PUT("/:id/lock", c.Finance.SetReceiptLock)
	}
	expenses := staff.Group("/expenses")
	{
		expenses.POST("", c.Finance.CreateExpense)
		expenses.GET("", c.Finance.ListExpenses)
		expenses.PUT("/:id", c.Finance.UpdateExpense)
		expenses.DELETE("/:id", c.Finance.DeleteExpense)
	}
	payrolls := staff.Group("/payrolls")
	{
		payrolls.POST("", c.Finance.CreatePayroll)
		payrolls.GET("", c.Finance.ListPayrolls)
		payrolls.GET("/:id", c.Finance.GetPayroll)
		payrolls.PUT("/:id", c.Finance.UpdatePayroll)
	}
	staff.GET("/finance/summary", c.Finance.Summary)
	staff.GET("/finance/export", c.Finance.Export)
	staff.GET("/finance/outstanding/batch/:id", c.Finance.BatchOutstanding)
	staff.GET("/finance/outstanding/course/:id", c.Finance.CourseOutstanding)
	staff.GET("/finance/outstanding/overall", c.Finance.OverallOutstanding)
	staff.GET("/finance/revenue/course/:id", c.Finance.CourseRevenue)

	// Inventory
	stock := staff.Group("/stock")
	{
		stock.POST("/items", c.Inventory.CreateItem)
		stock.GET("/items", c.Inventory.ListItems)
		stock.GET("/items/:id", c.Inventory.GetItem)
		stock.PUT("/items/:id", c.Inventory.UpdateItem)
		stock.DELETE("/items/:id", c.Inventory.DeleteItem)
		stock.POST("/items/:id/transactions", c.Inventory.RecordTransaction)
		stock.GET("/items/:id/transactions", c.Inventory.ListTransactions)
		stock.DELETE("/transactions/:id", c.Inventory.DeleteTransaction)
	}

	// Certificates
	certificates := staff.Group("/certificates")
	{
		certificates.POST("", c.Certificate.Issue)
		certificates.GET("", c.Certificate.List)
		certificates.GET("/:id", c.Certificate.Get)
		certificates.POST("/:id/revoke", c.Certificate.Revoke)
		certificates.POST("/:id/reinstate", c.Certificate.Reinstate)
	}
	authenticated.GET("/certificates/mine", c.Certificate.Mine)
	authenticated.GET("/certificates/:id/pdf", c.Certificate.DownloadPDF)

	// Events
	authenticated.GET("/events", c.Event.List)
	authenticated.GET("/events/:id", c.Event.Get)
	events := staff.Group("/events")
	{
		events.POST("", c.Event.Create)
		events.PUT("/:id", c.Event.Update)
		events.DELETE("/:id", c.Event.Delete)
	}

	// Messaging: the admin inbox is staff-side, the /messages surface is
	// the student side of the same threads.
	staff.GET("/conversations", c.Messaging.ListConversations)
	authenticated.GET("/conversations/:id/messages", c.Messaging.ListMessages)
	authenticated.POST("/messages", c.Messaging.SendFromStudent)
	authenticated.GET("/messages/conversation", c.Messaging.MyConversation)

	// Notifications
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", c.Notification.List)
		notifications.GET("/unread-count", c.Notification.UnreadCount)
		notifications.POST("/:id/read", c.Notification.MarkRead)
		notifications.POST("/read-all", c.Notification.MarkAllRead)
		notifications.DELETE("/:id", c.Notification.Delete)
	}
	admin.POST("/notifications/send", c.Notification.Send)
}
