package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := ConflictError("A category with this name already exists", cause)

	assert.Equal(t, "A category with this name already exists: duplicate key value", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("create category: %w", err)
	assert.Equal(t, http.StatusConflict, StatusCode(wrapped))
	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Same(t, err, GetAppError(wrapped))

	assert.Equal(t, http.StatusInternalServerError, StatusCode(cause))
	assert.False(t, IsAppError(cause))
	assert.False(t, IsNotFoundError(nil))
	assert.Nil(t, WrapError(nil, "ignored"))
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", NotFoundError("Item not found", nil), http.StatusNotFound, `{"error":"Item not found"}`},
		{"bad request", BadRequestError("price: cannot be negative", nil), http.StatusBadRequest, `{"error":"price: cannot be negative"}`},
		{"cause stays hidden", InternalError("Failed to fetch items", errors.New("dial tcp: refused")), http.StatusInternalServerError, `{"error":"Failed to fetch items"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}
