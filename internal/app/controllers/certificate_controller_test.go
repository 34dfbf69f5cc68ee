package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationNotFoundBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/verify/certificates/unknown", nil)

	respondVerificationNotFound(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Scanner pages read the valid flag off the 404 body, so it must be
	// the verification shape rather than the error envelope.
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	valid, ok := body["valid"].(bool)
	require.True(t, ok, "404 body has no valid flag")
	assert.False(t, valid)
	assert.NotContains(t, body, "error")
}
