package service

import (
	"context"
	"fmt"

	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// DraftService runs edit sessions: drafts are loaded, changed and saved back
// on every call, and committed through the RecipeService.
type DraftService struct {
	drafts  editor.DraftStore
	recipes *RecipeService
}

// NewDraftService creates a DraftService.
func NewDraftService(drafts editor.DraftStore, recipes *RecipeService) *DraftService {
	return &DraftService{drafts: drafts, recipes: recipes}
}

// Open starts a draft. An empty recipeID starts the create flow with default
// values; otherwise the stored recipe is loaded for editing.
func (s *DraftService) Open(ctx context.Context, recipeID string) (*editor.Draft, error) {
	var d *editor.Draft
	if recipeID == "" {
		d = editor.NewDraft(editor.NewRecipe(), editor.CreateOptions())
	} else {
		recipe, err := s.recipes.Get(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		d = editor.NewDraft(*recipe, editor.EditOptions())
		d.SourceID = recipeID
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get loads a draft.
func (s *DraftService) Get(ctx context.Context, id string) (*editor.Draft, error) {
	return s.drafts.Get(ctx, id)
}

// Discard deletes a draft.
func (s *DraftService) Discard(ctx context.Context, id string) error {
	return s.drafts.Delete(ctx, id)
}

// Update applies metadata changes and row edits.
func (s *DraftService) Update(ctx context.Context, id string, req types.UpdateDraftRequest) (*editor.Draft, error) {
	return s.mutate(ctx, id, func(d *editor.Draft) error {
		r := &d.Recipe
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.Description != nil {
			r.Description = *req.Description
		}
		if req.ImageURL != nil {
			r.ImageURL = *req.ImageURL
		}
		if req.PrepTime != nil {
			r.PrepTime = *req.PrepTime
		}
		if req.CookTime != nil {
			r.CookTime = *req.CookTime
		}
		if req.Servings != nil {
			r.Servings = *req.Servings
		}
		if req.Difficulty != nil {
			r.Difficulty = *req.Difficulty
		}
		if req.Category != nil {
			r.Category = *req.Category
		}
		for _, ing := range req.Ingredients {
			if err := d.SetIngredient(ing.Index, ing.Name, ing.Quantity); err != nil {
				return fmt.Errorf("ingredient %d: %w", ing.Index, err)
			}
		}
		for _, st := range req.Steps {
			if err := d.SetStep(st.Index, st.Description, st.ImageURL); err != nil {
				return fmt.Errorf("step %d: %w", st.Index, err)
			}
		}
		return nil
	})
}

// AddIngredient appends an empty ingredient row.
func (s *DraftService) AddIngredient(ctx context.Context, id string) (*editor.Draft, error) {
	return s.mutate(ctx, id, func(d *editor.Draft) error {
		d.AddIngredient()
		return nil
	})
}

// RemoveIngredient removes the ingredient row at index.
func (s *DraftService) RemoveIngredient(ctx context.Context, id string, index int) (*editor.Draft, error) {
	return s.mutate(ctx, id, func(d *editor.Draft) error {
		return d.RemoveIngredient(index)
	})
}

// AddStep appends an empty step.
func (s *DraftService) AddStep(ctx context.Context, id string) (*editor.Draft, error) {
	return s.mutate(ctx, id, func(d *editor.Draft) error {
		d.AddStep()
		return nil
	})
}

// RemoveStep removes the step at index and renumbers the rest.
func (s *DraftService) RemoveStep(ctx context.Context, id string, index int) (*editor.Draft, error) {
	return s.mutate(ctx, id, func(d *editor.Draft) error {
		return d.RemoveStep(index)
	})
}

// Commit persists the draft: a new recipe for the create flow, an update of
// the source recipe otherwise. The draft is deleted on success.
func (s *DraftService) Commit(ctx context.Context, id string, owner *types.CurrentUser) (*model.Recipe, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var saved *model.Recipe
	if d.SourceID == "" {
		saved, err = s.recipes.Create(ctx, d.Recipe, owner)
	} else {
		saved, err = s.recipes.Update(ctx, d.SourceID, d.Recipe)
	}
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, id); err != nil {
		s.recipes.logger.Warn("failed to delete committed draft", "draft_id", id, "error", err)
	}
	return saved, nil
}

func (s *DraftService) mutate(ctx context.Context, id string, fn func(*editor.Draft) error) (*editor.Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
