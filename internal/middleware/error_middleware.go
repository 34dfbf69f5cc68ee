package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tailorwise/tailorwise/internal/app/models/dto"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto the standard error envelope.
// CustomError messages override the generic text for their base error.
func HandleAPIError(c *gin.Context, err error) {
	message := func(fallback string) string {
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			return customErr.Message
		}
		return fallback
	}

	switch {
	// Not found
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrMeasurementNotFound,
		apperrors.ErrEnquiryNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrTrainerNotFound,
		apperrors.ErrBatchNotFound,
		apperrors.ErrEnrollmentNotFound,
		apperrors.ErrAttendanceNotFound,
		apperrors.ErrReceiptNotFound,
		apperrors.ErrExpenseNotFound,
		apperrors.ErrPayrollNotFound,
		apperrors.ErrStockItemNotFound,
		apperrors.ErrStockTransactionNotFound,
		apperrors.ErrCertificateNotFound,
		apperrors.ErrEventNotFound,
		apperrors.ErrConversationNotFound,
		apperrors.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(err.Error()))))

	// Duplicates
	case apperrors.Is(err, apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrUsernameAlreadyExists,
		apperrors.ErrCourseCodeExists,
		apperrors.ErrBatchCodeExists,
		apperrors.ErrAlreadyEnrolled,
		apperrors.ErrAttendanceExists,
		apperrors.ErrPayrollExists,
		apperrors.ErrCertificateExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message(err.Error()))))

	// State conflicts
	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrBatchFull,
		apperrors.ErrInsufficientStock,
		apperrors.ErrEnquiryAlreadyConverted,
		apperrors.ErrStudentHasReceipts,
		apperrors.ErrCertificateRevoked,
		apperrors.ErrCourseNotCompleted):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message(err.Error()))))

	case errors.Is(err, apperrors.ErrReceiptLocked):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceLocked, message("Receipt is locked and cannot be modified"))))

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTokenExpired, "Token expired")))

	case apperrors.Is(err, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeAccountInactive, "Account is disabled")))

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied"))))

	// Validation
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message(err.Error()))))

	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrInvalidMonth,
		apperrors.ErrStudentNotInBatch):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidOperation, message(err.Error()))))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
