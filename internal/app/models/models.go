package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStaff   RoleType = "STAFF"
	RoleTrainer RoleType = "TRAINER"
	RoleStudent RoleType = "STUDENT"
)

// IsStaff reports whether the role has back-office privileges.
func (r RoleType) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// EnquiryStatus tracks a pre-admission enquiry through its lifecycle
type EnquiryStatus string

const (
	EnquiryNew       EnquiryStatus = "new"
	EnquiryFollowUp  EnquiryStatus = "follow_up"
	EnquiryConverted EnquiryStatus = "converted"
	EnquiryClosed    EnquiryStatus = "closed"
)

// EnrollmentStatus is the state of a student's enrollment in a batch
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// AttendanceStatus is a single-day mark for one student
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "P"
	AttendanceAbsent  AttendanceStatus = "A"
	AttendanceLeave   AttendanceStatus = "L"
)

// PaymentMode is how a fee payment was made
type PaymentMode string

const (
	PaymentCash PaymentMode = "cash"
	PaymentUPI  PaymentMode = "upi"
	PaymentBank PaymentMode = "bank"
	PaymentCard PaymentMode = "card"
)

// ExpenseCategory classifies an operational expense
type ExpenseCategory string

const (
	ExpenseMaterial    ExpenseCategory = "material"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseSalary      ExpenseCategory = "salary"
	ExpenseOther       ExpenseCategory = "other"
)

// ReminderStatus is the delivery state of a fee reminder
type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	ReminderSent    ReminderStatus = "sent"
	ReminderFailed  ReminderStatus = "failed"
)

// PayrollStatus is the payment state of a payroll record
type PayrollStatus string

const (
	PayrollPending PayrollStatus = "Pending"
	PayrollPaid    PayrollStatus = "Paid"
)

// NotificationLevel is the severity of a notification
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)
