package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/types"
)

type stubValidator map[string]types.CurrentUser

func (s stubValidator) ValidateToken(_ context.Context, token string) (*types.TokenClaims, error) {
	user, ok := s[token]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", apperr.ErrInvalidToken)
	}
	return &types.TokenClaims{UserID: user.ID, Email: user.Email}, nil
}

var testValidator = stubValidator{"good": {ID: "u1", Email: "a@example.com"}}

func whoami(c *gin.Context) {
	user, ok := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"signed_in": ok, "id": user.ID, "token": BearerToken(c)})
}

func authRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(logging.Discard()))
	r.GET("/", mw, whoami)
	return r
}

func doAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRequireAuth(t *testing.T) {
	r := authRouter(RequireAuth(testValidator))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doAuth(r, tt.header)
			assert.Equal(t, tt.status, rr.Code)
		})
	}

	rr := doAuth(r, "Bearer good")
	assert.JSONEq(t, `{"signed_in":true,"id":"u1","token":"good"}`, rr.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := authRouter(OptionalAuth(testValidator))

	rr := doAuth(r, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"signed_in":false,"id":"","token":""}`, rr.Body.String())

	rr = doAuth(r, "Bearer good")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"signed_in":true,"id":"u1","token":"good"}`, rr.Body.String())

	rr = doAuth(r, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
