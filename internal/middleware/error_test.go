package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	r := gin.New()
	r.Use(ErrorHandler(logging.Discard()))
	r.GET("/", handler)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	var body ErrorResponse
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

func TestErrorHandler(t *testing.T) {
	rr, body := serveError(t, func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("get recipe r1: %w", apperr.ErrNotFound))
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "get recipe r1: not found", body.Error)
}

func TestErrorHandlerValidation(t *testing.T) {
	rr, body := serveError(t, func(c *gin.Context) {
		_ = c.Error(apperr.Invalid("title", "title is required"))
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "title", body.Field)
	assert.Equal(t, "title is required", body.Error)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	rr, body := serveError(t, func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", body.Error)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	rr, body := serveError(t, func(c *gin.Context) {
		panic("boom")
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", body.Error)
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	rr, _ := serveError(t, func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"auth required", apperr.ErrAuthRequired, http.StatusUnauthorized},
		{"bad credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad token", fmt.Errorf("%w: expired", apperr.ErrInvalidToken), http.StatusUnauthorized},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"conflict", apperr.ErrConflict, http.StatusConflict},
		{"validation", apperr.Invalid("servings", "must be at least 1"), http.StatusUnprocessableEntity},
		{"media", apperr.MediaError("upload", errors.New("empty")), http.StatusBadRequest},
		{"index", fmt.Errorf("remove step 4: %w", editor.ErrIndexOutOfRange), http.StatusBadRequest},
		{"floor", editor.ErrBelowFloor, http.StatusBadRequest},
		{"bad request", BadRequest(errors.New("invalid json")), http.StatusBadRequest},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
