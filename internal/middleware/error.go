package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/logging"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// BadRequest marks err as a client input problem, answered with 400.
func BadRequest(err error) error {
	return &requestError{err: err}
}

type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// StatusFor maps an error to the HTTP status the API answers with.
func StatusFor(err error) int {
	var reqErr *requestError
	var valErr *apperr.ValidationError
	switch {
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrAuthRequired),
		errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &reqErr),
		errors.Is(err, apperr.ErrMediaReadFailed),
		errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, editor.ErrBelowFloor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders the last error attached with c.Error as JSON and
// turns panics into a 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	logger = logging.OrDiscard(logger)
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic serving request", "path", c.Request.URL.Path, "panic", rec)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
			c.JSON(status, ErrorResponse{Error: "internal server error"})
			return
		}

		resp := ErrorResponse{Error: err.Error()}
		var valErr *apperr.ValidationError
		if errors.As(err, &valErr) {
			resp.Field = valErr.Field
			resp.Error = valErr.Message
		}
		c.JSON(status, resp)
	}
}
