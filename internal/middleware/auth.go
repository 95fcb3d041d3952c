package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/auth"
	"github.com/pageza/cookbook/backend/internal/types"
)

const (
	claimsKey = "claims"
	tokenKey  = "token"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, true)
}

// OptionalAuth attaches the user when a valid token is sent and lets
// anonymous requests through. A token that is present but invalid is
// still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, false)
}

func authenticate(validator TokenValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				_ = c.Error(apperr.ErrAuthRequired)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		token, ok := parseBearer(header)
		if !ok {
			_ = c.Error(fmt.Errorf("%w: invalid authorization header format", apperr.ErrInvalidToken))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set(tokenKey, token)
		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), claims.CurrentUser()))
		c.Next()
	}
}

func parseBearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUser returns the user attached by the auth middleware.
func CurrentUser(c *gin.Context) (types.CurrentUser, bool) {
	return auth.UserFromContext(c.Request.Context())
}

// BearerToken returns the validated token of the request, if any.
func BearerToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
