package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// CurrentUser returns the identity carried by the claims.
func (c *TokenClaims) CurrentUser() CurrentUser {
	return CurrentUser{ID: c.UserID, Email: c.Email}
}
