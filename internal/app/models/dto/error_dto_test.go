package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleValidationError(t *testing.T) {
	type loginRequest struct {
		Username string `validate:"required,min=3"`
		Email    string `validate:"required,email"`
	}

	v := validator.New()
	err := v.Struct(loginRequest{Username: "ab", Email: "not-an-email"})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Validation failed", detail.Message)

	fields, ok := detail.Details.([]ValidationError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "Username", fields[0].Field)
	assert.Equal(t, "must be at least 3", fields[0].Message)
	assert.Equal(t, "Email", fields[1].Field)
	assert.Equal(t, "must be a valid email address", fields[1].Message)
}

func TestHandleValidationErrorNonValidatorError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "unexpected EOF", detail.Details)
}

func TestErrorDetailWithDetails(t *testing.T) {
	detail := NewErrorDetail(ErrorCodeResourceNotFound, "Student not found").
		WithDetails(map[string]interface{}{"studentId": 42})

	assert.Equal(t, ErrorCodeResourceNotFound, detail.Code)
	assert.Equal(t, "Student not found", detail.Message)
	assert.NotNil(t, detail.Details)
}
