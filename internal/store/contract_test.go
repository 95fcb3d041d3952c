package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
)

func sampleRecipe(title string) *model.Recipe {
	return &model.Recipe{
		Title:       title,
		Description: "description of " + title,
		PrepTime:    10,
		CookTime:    20,
		Servings:    4,
		Difficulty:  model.DifficultyEasy,
		Category:    "Desserts",
		Ingredients: model.Ingredients{{Name: "sucre", Quantity: "100 g"}},
		Steps:       model.Steps{{Order: 1, Description: "Mélanger"}},
	}
}

func testRecipeStore(t *testing.T, s RecipeStore) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		recipes, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)
	})

	t.Run("create and get", func(t *testing.T) {
		in := sampleRecipe("Tarte")
		in.ID = "caller-chosen"
		id, err := s.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.NotEqual(t, "caller-chosen", id)
		assert.Equal(t, id, in.ID)

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Tarte", got.Title)
		assert.Equal(t, in.Ingredients, got.Ingredients)
		assert.Equal(t, in.Steps, got.Steps)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		id, err := s.Create(ctx, sampleRecipe("Gratin"))
		require.NoError(t, err)

		require.NoError(t, s.Update(ctx, id, &model.Recipe{Title: "Gratin dauphinois", CookTime: 45}))

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Gratin dauphinois", got.Title)
		assert.Equal(t, 45, got.CookTime)
		assert.Equal(t, 10, got.PrepTime)
		assert.Equal(t, "description of Gratin", got.Description)
		assert.Len(t, got.Ingredients, 1)
	})

	t.Run("update replaces lists", func(t *testing.T) {
		id, err := s.Create(ctx, sampleRecipe("Crêpes"))
		require.NoError(t, err)

		steps := model.Steps{{Order: 1, Description: "a"}, {Order: 2, Description: "b"}}
		require.NoError(t, s.Update(ctx, id, &model.Recipe{Steps: steps}))

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, steps, got.Steps)
	})

	t.Run("named columns write zero values", func(t *testing.T) {
		id, err := s.Create(ctx, sampleRecipe("Salade"))
		require.NoError(t, err)

		require.NoError(t, s.Update(ctx, id, &model.Recipe{Title: "Salade niçoise"}, "title", "prep_time", "cook_time"))

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Salade niçoise", got.Title)
		assert.Zero(t, got.PrepTime)
		assert.Zero(t, got.CookTime)
		assert.Equal(t, 4, got.Servings)
		assert.Equal(t, "description of Salade", got.Description)
	})

	t.Run("update missing", func(t *testing.T) {
		err := s.Update(ctx, "missing", &model.Recipe{Title: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		id, err := s.Create(ctx, sampleRecipe("Quiche"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, id))
		require.NoError(t, s.Delete(ctx, id))
		_, err = s.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list sees writes", func(t *testing.T) {
		recipes, err := s.List(ctx)
		require.NoError(t, err)
		titles := make([]string, 0, len(recipes))
		for _, r := range recipes {
			titles = append(titles, r.Title)
		}
		assert.ElementsMatch(t, []string{"Tarte", "Gratin dauphinois", "Crêpes", "Salade niçoise"}, titles)
	})
}

func testUserStore(t *testing.T, s UserStore) {
	ctx := context.Background()

	t.Run("missing record", func(t *testing.T) {
		_, err := s.GetUserRecord(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.AddFavorite(ctx, "nobody", "r1"), ErrNotFound)
		assert.ErrorIs(t, s.RemoveFavorite(ctx, "nobody", "r1"), ErrNotFound)
	})

	t.Run("create once", func(t *testing.T) {
		rec := &model.UserRecord{ID: "u1", Email: "u1@example.com", Favorites: model.StringSet{"r1"}}
		require.NoError(t, s.CreateUserRecord(ctx, rec))

		err := s.CreateUserRecord(ctx, &model.UserRecord{ID: "u1"})
		assert.ErrorIs(t, err, ErrAlreadyExists)

		got, err := s.GetUserRecord(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1@example.com", got.Email)
		assert.Equal(t, model.StringSet{"r1"}, got.Favorites)
	})

	t.Run("set semantics", func(t *testing.T) {
		require.NoError(t, s.AddFavorite(ctx, "u1", "r2"))
		require.NoError(t, s.AddFavorite(ctx, "u1", "r2"))
		require.NoError(t, s.AddFavorite(ctx, "u1", "r3"))
		require.NoError(t, s.RemoveFavorite(ctx, "u1", "r1"))
		require.NoError(t, s.RemoveFavorite(ctx, "u1", "absent"))

		got, err := s.GetUserRecord(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, model.StringSet{"r2", "r3"}, got.Favorites)
	})

	t.Run("concurrent adds are all kept", func(t *testing.T) {
		require.NoError(t, s.CreateUserRecord(ctx, &model.UserRecord{ID: "u2"}))

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, s.AddFavorite(ctx, "u2", fmt.Sprintf("r%d", i)))
			}(i)
		}
		wg.Wait()

		got, err := s.GetUserRecord(ctx, "u2")
		require.NoError(t, err)
		assert.Len(t, got.Favorites, 8)
	})
}
