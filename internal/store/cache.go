package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/cookbook/backend/internal/model"
)

const snapshotKey = "recipes:snapshot"

// CachedRecipeStore serves List from a redis snapshot and drops the snapshot
// on every write. Readers may see a snapshot older than a concurrent write.
type CachedRecipeStore struct {
	RecipeStore
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRecipeStore wraps next with a snapshot cache.
func NewCachedRecipeStore(next RecipeStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRecipeStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRecipeStore{RecipeStore: next, redis: client, ttl: ttl, logger: logger}
}

// List returns the cached snapshot, loading it from the wrapped store on miss.
// Cache failures fall through to the wrapped store.
func (s *CachedRecipeStore) List(ctx context.Context) ([]model.Recipe, error) {
	data, err := s.redis.Get(ctx, snapshotKey).Bytes()
	switch {
	case err == nil:
		var recipes []model.Recipe
		if jsonErr := json.Unmarshal(data, &recipes); jsonErr == nil {
			return recipes, nil
		}
		s.logger.Warn("discarding unreadable recipe snapshot")
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("recipe snapshot unavailable", "error", err)
	}

	recipes, err := s.RecipeStore.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(recipes); err == nil {
		if err := s.redis.Set(ctx, snapshotKey, data, s.ttl).Err(); err != nil {
			s.logger.Warn("failed to cache recipe snapshot", "error", err)
		}
	}
	return recipes, nil
}

// Create writes through and invalidates the snapshot.
func (s *CachedRecipeStore) Create(ctx context.Context, recipe *model.Recipe) (string, error) {
	id, err := s.RecipeStore.Create(ctx, recipe)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return id, nil
}

// Update writes through and invalidates the snapshot.
func (s *CachedRecipeStore) Update(ctx context.Context, id string, patch *model.Recipe, columns ...string) error {
	if err := s.RecipeStore.Update(ctx, id, patch, columns...); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete writes through and invalidates the snapshot.
func (s *CachedRecipeStore) Delete(ctx context.Context, id string) error {
	if err := s.RecipeStore.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedRecipeStore) invalidate(ctx context.Context) {
	if err := s.redis.Del(ctx, snapshotKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate recipe snapshot", "error", err)
	}
}
