package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/model"
)

// GormRecipeStore implements RecipeStore on gorm.
type GormRecipeStore struct {
	db *gorm.DB
}

// NewGormRecipeStore creates a GormRecipeStore.
func NewGormRecipeStore(db *gorm.DB) *GormRecipeStore {
	return &GormRecipeStore{db: db}
}

// List returns every recipe, newest first.
func (s *GormRecipeStore) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}

// Get retrieves a recipe by ID
func (s *GormRecipeStore) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// Create inserts the recipe; the ID comes from model.Recipe.BeforeCreate.
func (s *GormRecipeStore) Create(ctx context.Context, recipe *model.Recipe) (string, error) {
	recipe.ID = ""
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return "", fmt.Errorf("create recipe: %w", err)
	}
	return recipe.ID, nil
}

// Update writes the named columns of patch, or its non-zero fields.
func (s *GormRecipeStore) Update(ctx context.Context, id string, patch *model.Recipe, columns ...string) error {
	p := *patch
	p.ID = ""
	query := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id)
	if len(columns) > 0 {
		query = query.Select(columns)
	}
	result := query.Omit("id", "created_at").Updates(&p)
	if result.Error != nil {
		return fmt.Errorf("update recipe %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the recipe. Deleting a missing id succeeds.
func (s *GormRecipeStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	return nil
}

// GormUserStore implements UserStore on gorm.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore creates a GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// GetUserRecord loads the user's record.
func (s *GormUserStore) GetUserRecord(ctx context.Context, userID string) (*model.UserRecord, error) {
	var rec model.UserRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user record %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user record %s: %w", userID, err)
	}
	return &rec, nil
}

// CreateUserRecord inserts a new record.
func (s *GormUserStore) CreateUserRecord(ctx context.Context, record *model.UserRecord) error {
	if record.Favorites == nil {
		record.Favorites = model.StringSet{}
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("user record %s: %w", record.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("create user record %s: %w", record.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user record %s: %w", record.ID, ErrAlreadyExists)
	}
	return nil
}

// AddFavorite adds recipeID to the user's set.
func (s *GormUserStore) AddFavorite(ctx context.Context, userID, recipeID string) error {
	return s.mutateFavorites(ctx, userID, func(set model.StringSet) model.StringSet {
		return set.Add(recipeID)
	})
}

// RemoveFavorite removes recipeID from the user's set.
func (s *GormUserStore) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return s.mutateFavorites(ctx, userID, func(set model.StringSet) model.StringSet {
		return set.Remove(recipeID)
	})
}

// mutateFavorites runs one read-modify-write of the set in a transaction so a
// single union or removal is applied to the record as a whole.
func (s *GormUserStore) mutateFavorites(ctx context.Context, userID string, fn func(model.StringSet) model.StringSet) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var rec model.UserRecord
		if err := query.First(&rec, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user record %s: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("get user record %s: %w", userID, err)
		}

		next := fn(rec.Favorites)
		if err := tx.Model(&rec).Update("favorites", next).Error; err != nil {
			return fmt.Errorf("update favorites of %s: %w", userID, err)
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
