package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/model"
)

// Memory is a process-local RecipeStore and UserStore. Values are copied on
// the way in and out so callers never share slices with the store.
type Memory struct {
	mu      sync.RWMutex
	recipes map[string]model.Recipe
	seq     map[string]int64
	next    int64
	users   map[string]model.UserRecord
	now     func() time.Time
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		recipes: make(map[string]model.Recipe),
		seq:     make(map[string]int64),
		users:   make(map[string]model.UserRecord),
		now:     time.Now,
	}
}

// List returns all recipes, most recently created first.
func (m *Memory) List(_ context.Context) ([]model.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

// Get returns a copy of the recipe.
func (m *Memory) Get(_ context.Context, id string) (*model.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	c := r.Clone()
	return &c, nil
}

// Create stores a copy and assigns ID and timestamps on recipe.
func (m *Memory) Create(_ context.Context, recipe *model.Recipe) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recipe.ID = uuid.NewString()
	recipe.CreatedAt = m.now()
	recipe.UpdatedAt = recipe.CreatedAt
	m.recipes[recipe.ID] = recipe.Clone()
	m.next++
	m.seq[recipe.ID] = m.next
	return recipe.ID, nil
}

// Update merges patch as model.Recipe.Merge does.
func (m *Memory) Update(_ context.Context, id string, patch *model.Recipe, columns ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	r.Merge(*patch, columns...)
	r.UpdatedAt = m.now()
	m.recipes[id] = r
	return nil
}

// Delete removes the recipe if present.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recipes, id)
	delete(m.seq, id)
	return nil
}

// GetUserRecord returns a copy of the user's record.
func (m *Memory) GetUserRecord(_ context.Context, userID string) (*model.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user record %s: %w", userID, ErrNotFound)
	}
	rec.Favorites = append(model.StringSet{}, rec.Favorites...)
	return &rec, nil
}

// CreateUserRecord inserts a record unless one exists.
func (m *Memory) CreateUserRecord(_ context.Context, record *model.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[record.ID]; ok {
		return fmt.Errorf("user record %s: %w", record.ID, ErrAlreadyExists)
	}
	rec := *record
	rec.Favorites = append(model.StringSet{}, record.Favorites...)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	rec.UpdatedAt = rec.CreatedAt
	m.users[rec.ID] = rec
	return nil
}

// AddFavorite adds recipeID to an existing record.
func (m *Memory) AddFavorite(_ context.Context, userID, recipeID string) error {
	return m.mutate(userID, func(s model.StringSet) model.StringSet { return s.Add(recipeID) })
}

// RemoveFavorite removes recipeID from an existing record.
func (m *Memory) RemoveFavorite(_ context.Context, userID, recipeID string) error {
	return m.mutate(userID, func(s model.StringSet) model.StringSet { return s.Remove(recipeID) })
}

func (m *Memory) mutate(userID string, fn func(model.StringSet) model.StringSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user record %s: %w", userID, ErrNotFound)
	}
	rec.Favorites = fn(append(model.StringSet{}, rec.Favorites...))
	rec.UpdatedAt = m.now()
	m.users[userID] = rec
	return nil
}
