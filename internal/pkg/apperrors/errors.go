package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Student and enquiry errors
var (
	ErrStudentNotFound         = errors.New("student not found")
	ErrMeasurementNotFound     = errors.New("measurement not found")
	ErrEnquiryNotFound         = errors.New("enquiry not found")
	ErrEnquiryAlreadyConverted = errors.New("enquiry already converted")
	ErrStudentHasReceipts      = errors.New("student has posted receipts")
)

// Course, trainer and batch errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseCodeExists   = errors.New("course code already exists")
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrBatchNotFound      = errors.New("batch not found")
	ErrBatchCodeExists    = errors.New("batch code already exists")
	ErrBatchFull          = errors.New("batch is at capacity")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in this batch")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// Attendance errors
var (
	ErrAttendanceNotFound = errors.New("attendance sheet not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this date")
	ErrStudentNotInBatch  = errors.New("student is not enrolled in this batch")
)

// Finance errors
var (
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrReceiptLocked   = errors.New("receipt is locked")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrPayrollNotFound = errors.New("payroll not found")
	ErrPayrollExists   = errors.New("payroll already exists for this trainer and month")
	ErrInvalidMonth    = errors.New("invalid month format")
)

// Inventory errors
var (
	ErrStockItemNotFound        = errors.New("stock item not found")
	ErrStockTransactionNotFound = errors.New("stock transaction not found")
	ErrInsufficientStock        = errors.New("insufficient stock on hand")
)

// Certificate errors
var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateExists   = errors.New("a valid certificate already exists for this student and course")
	ErrCertificateRevoked  = errors.New("certificate has been revoked")
	ErrCourseNotCompleted  = errors.New("student has not completed the course")
)

// Event, messaging and notification errors
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches err, or any of the extra errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
