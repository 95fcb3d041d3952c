// Package store is the gateway to the recipe collection and to per-user
// records. Writes are eventually visible: a List running concurrently with a
// write may or may not observe it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
)

var (
	// ErrNotFound matches apperr.ErrNotFound.
	ErrNotFound = fmt.Errorf("document %w", apperr.ErrNotFound)

	// ErrAlreadyExists is returned when creating a record whose key is taken.
	ErrAlreadyExists = errors.New("document already exists")
)

// RecipeStore is the recipes collection.
type RecipeStore interface {
	// List returns the current snapshot. An empty collection is not an error.
	List(ctx context.Context) ([]model.Recipe, error)
	// Get returns ErrNotFound when id is absent.
	Get(ctx context.Context, id string) (*model.Recipe, error)
	// Create assigns ID and CreatedAt and returns the ID.
	Create(ctx context.Context, recipe *model.Recipe) (string, error)
	// Update writes the named columns of patch, or its non-zero fields when no
	// column is named. ErrNotFound when id is absent.
	Update(ctx context.Context, id string, patch *model.Recipe, columns ...string) error
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}

// UserStore is the per-user records collection holding favorite sets.
type UserStore interface {
	// GetUserRecord returns ErrNotFound when the user has no record yet.
	GetUserRecord(ctx context.Context, userID string) (*model.UserRecord, error)
	// CreateUserRecord returns ErrAlreadyExists when a record exists.
	CreateUserRecord(ctx context.Context, record *model.UserRecord) error
	// AddFavorite is a set union on an existing record; ErrNotFound otherwise.
	AddFavorite(ctx context.Context, userID, recipeID string) error
	// RemoveFavorite removes a member of an existing record; ErrNotFound otherwise.
	RemoveFavorite(ctx context.Context, userID, recipeID string) error
}
