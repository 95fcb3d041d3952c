// Package auth carries the current user: in a request context for the HTTP
// API, and as an observable session for the terminal client.
package auth

import (
	"context"

	"github.com/pageza/cookbook/backend/internal/types"
)

type userKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user types.CurrentUser) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (types.CurrentUser, bool) {
	user, ok := ctx.Value(userKey{}).(types.CurrentUser)
	if !ok || user.ID == "" {
		return types.CurrentUser{}, false
	}
	return user, true
}

// ContextUserSource reads the current user from the request context.
type ContextUserSource struct{}

// CurrentUser implements favorites.CurrentUserSource.
func (ContextUserSource) CurrentUser(ctx context.Context) (types.CurrentUser, bool) {
	return UserFromContext(ctx)
}
