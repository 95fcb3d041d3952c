// Package favorites keeps each user's favorite recipe set consistent with the
// remote per-user record: lazy creation on first add, idempotent union and
// removal, and toggle built on top of both.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/store"
	"github.com/pageza/cookbook/backend/internal/types"
)

// maxConcurrentFetches bounds the fan-out of FavoriteRecipes.
const maxConcurrentFetches = 8

// CurrentUserSource yields the authenticated user, if any.
type CurrentUserSource interface {
	CurrentUser(ctx context.Context) (types.CurrentUser, bool)
}

// RecipeGetter loads a single recipe by id.
type RecipeGetter interface {
	Get(ctx context.Context, id string) (*model.Recipe, error)
}

// Service implements the favorites protocol over a store.UserStore.
type Service struct {
	users   store.UserStore
	recipes RecipeGetter
	current CurrentUserSource
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a favorites Service.
func NewService(users store.UserStore, recipes RecipeGetter, current CurrentUserSource, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		recipes: recipes,
		current: current,
		logger:  logging.OrDiscard(logger),
		now:     time.Now,
	}
}

// IsFavorite reports membership. Without a user or a record the answer is false.
func (s *Service) IsFavorite(ctx context.Context, recipeID string) (bool, error) {
	ids, err := s.GetFavorites(ctx)
	if err != nil {
		return false, err
	}
	return model.StringSet(ids).Contains(recipeID), nil
}

// GetFavorites returns the favorite ids in stored order, empty when there is no
// user or no record.
func (s *Service) GetFavorites(ctx context.Context) ([]string, error) {
	user, ok := s.current.CurrentUser(ctx)
	if !ok {
		return []string{}, nil
	}
	rec, err := s.users.GetUserRecord(ctx, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}
	return append([]string{}, rec.Favorites...), nil
}

// AddToFavorites adds recipeID to the user's set, creating the record on the
// first add.
func (s *Service) AddToFavorites(ctx context.Context, recipeID string) error {
	user, ok := s.current.CurrentUser(ctx)
	if !ok {
		return apperr.ErrAuthRequired
	}

	err := s.users.AddFavorite(ctx, user.ID, recipeID)
	if !errors.Is(err, store.ErrNotFound) {
		if err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		return nil
	}

	rec := &model.UserRecord{
		ID:        user.ID,
		Email:     user.Email,
		Favorites: model.StringSet{recipeID},
		CreatedAt: s.now(),
	}
	err = s.users.CreateUserRecord(ctx, rec)
	switch {
	case err == nil:
		s.logger.Info("created favorites record", "user_id", user.ID)
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		// another writer created the record first
		if err := s.users.AddFavorite(ctx, user.ID, recipeID); err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("create favorites record: %w", err)
	}
}

// RemoveFromFavorites removes recipeID. A missing record or non-member is a no-op.
func (s *Service) RemoveFromFavorites(ctx context.Context, recipeID string) error {
	user, ok := s.current.CurrentUser(ctx)
	if !ok {
		return apperr.ErrAuthRequired
	}
	err := s.users.RemoveFavorite(ctx, user.ID, recipeID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ToggleFavorite flips membership and returns the new state. Concurrent
// toggles of the same id are last-write-wins.
func (s *Service) ToggleFavorite(ctx context.Context, recipeID string) (bool, error) {
	if _, ok := s.current.CurrentUser(ctx); !ok {
		return false, apperr.ErrAuthRequired
	}
	isFav, err := s.IsFavorite(ctx, recipeID)
	if err != nil {
		return false, err
	}
	if isFav {
		if err := s.RemoveFromFavorites(ctx, recipeID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.AddToFavorites(ctx, recipeID); err != nil {
		return false, err
	}
	return true, nil
}

// FavoriteRecipes loads every favorite recipe concurrently. Recipes that fail
// to load are omitted; the rest keep the order of the favorite set.
func (s *Service) FavoriteRecipes(ctx context.Context) ([]model.Recipe, error) {
	ids, err := s.GetFavorites(ctx)
	if err != nil {
		return nil, err
	}

	// Per-id failures are logged and omitted, so only cancellation fails
	// the whole call.
	loaded := make([]*model.Recipe, len(ids))
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		g.Go(func() error {
			recipe, err := s.recipes.Get(ctx, id)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("skipping favorite recipe", "recipe_id", id, "error", err)
				return nil
			}
			loaded[i] = recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.Recipe, 0, len(ids))
	for _, r := range loaded {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
