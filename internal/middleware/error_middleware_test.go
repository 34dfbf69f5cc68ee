package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

func runHandleAPIError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response has no error detail")
	code, _ := detail["code"].(string)
	return code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, "RES_001"},
		{"batch not found", apperrors.ErrBatchNotFound, http.StatusNotFound, "RES_001"},
		{"username taken", apperrors.ErrUsernameAlreadyExists, http.StatusConflict, "RES_002"},
		{"attendance exists", apperrors.ErrAttendanceExists, http.StatusConflict, "RES_002"},
		{"batch full", apperrors.ErrBatchFull, http.StatusConflict, "RES_003"},
		{"enquiry already converted", apperrors.ErrEnquiryAlreadyConverted, http.StatusConflict, "RES_003"},
		{"receipt locked", apperrors.ErrReceiptLocked, http.StatusConflict, "RES_004"},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, "AUTH_002"},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized, "AUTH_003"},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, "AUTH_006"},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, "AUTH_005"},
		{"weak password", apperrors.ErrInvalidPassword, http.StatusBadRequest, "VAL_001"},
		{"invalid month", apperrors.ErrInvalidMonth, http.StatusBadRequest, "VAL_002"},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError, "SRV_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, body))
		})
	}
}

func TestHandleAPIErrorWrappedError(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrCourseNotFound, "Course 99 does not exist")

	w, body := runHandleAPIError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, w.Code)

	detail := body["error"].(map[string]interface{})
	assert.Equal(t, "Course 99 does not exist", detail["message"])
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := runHandleAPIError(t, errors.New("pq: connection refused"))

	detail := body["error"].(map[string]interface{})
	assert.Equal(t, "Internal server error", detail["message"])
	assert.NotContains(t, detail["message"], "connection refused")
}
