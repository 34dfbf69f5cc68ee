package dto

import (
	"time"
)

// APIResponse is the envelope wrapping every API response body.
// Exactly one of Data and Error is set.
type APIResponse struct {
	Data      any          `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-08-15T10:30:00Z"`
}

// NewSuccessResponse wraps data in the standard envelope
func NewSuccessResponse(data any) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse wraps an error in the standard envelope
func NewErrorResponse(err *ErrorDetail) APIResponse {
	return APIResponse{
		Error:     err,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes the page window of a list response
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalPages  int   `json:"totalPages" example:"5"`
	TotalItems  int64 `json:"totalItems" example:"97"`
}

// PaginatedResponse is the body shape for list endpoints
type PaginatedResponse struct {
	Items      any            `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
