package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is a stable machine-readable error identifier returned to clients
type ErrorCode string

const (
	// Authentication / authorization errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeTokenExpired       ErrorCode = "AUTH_002"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"
	ErrorCodeForbidden          ErrorCode = "AUTH_005"
	ErrorCodeAccountInactive    ErrorCode = "AUTH_006"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceConflict      ErrorCode = "RES_003"
	ErrorCodeResourceLocked        ErrorCode = "RES_004"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidOperation ErrorCode = "VAL_002"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorDetail carries a single error in API responses
type ErrorDetail struct {
	Code    ErrorCode `json:"code" example:"RES_001"`
	Message string    `json:"message" example:"The requested resource was not found"`
	Details any       `json:"details,omitempty"`
}

// NewErrorDetail creates an ErrorDetail without extra details
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails attaches field-level or contextual details to the error
func (e *ErrorDetail) WithDetails(details any) *ErrorDetail {
	e.Details = details
	return e
}

// ValidationError describes one failed field validation
type ValidationError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"must be a valid email address"`
}

// HandleValidationError converts validator errors into a client-facing
// ErrorDetail with one entry per failed field.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	}

	details := make([]ValidationError, 0, len(validationErrs))
	for _, e := range validationErrs {
		details = append(details, ValidationError{
			Field:   e.Field(),
			Message: formatFieldError(e),
		})
	}
	return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(details)
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	default:
		return "failed validation: " + e.Tag()
	}
}
