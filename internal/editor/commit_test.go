package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
)

func validRecipe() model.Recipe {
	return model.Recipe{
		Title:       "Tarte aux pommes",
		Description: "Classique",
		Servings:    6,
		Ingredients: model.Ingredients{{Name: "a", Quantity: "1"}, {Name: "", Quantity: "2"}, {Name: "b", Quantity: ""}},
		Steps:       model.Steps{{Order: 1, Description: "Préchauffer"}, {Order: 2}, {Order: 3, Description: "Cuire"}},
	}
}

func TestCommitFilterDropsIncompleteRows(t *testing.T) {
	got, err := CommitFilter(validRecipe())
	require.NoError(t, err)

	assert.Equal(t, model.Ingredients{{Name: "a", Quantity: "1"}}, got.Ingredients)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, model.Step{Order: 1, Description: "Préchauffer"}, got.Steps[0])
	assert.Equal(t, model.Step{Order: 2, Description: "Cuire"}, got.Steps[1])
}

func TestCommitFilterLeavesInputUntouched(t *testing.T) {
	in := validRecipe()
	_, err := CommitFilter(in)
	require.NoError(t, err)
	assert.Len(t, in.Ingredients, 3)
	assert.Len(t, in.Steps, 3)
}

func TestCommitFilterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.Recipe)
		field  string
	}{
		{"missing title", func(r *model.Recipe) { r.Title = "" }, "title"},
		{"missing description", func(r *model.Recipe) { r.Description = "" }, "description"},
		{"no complete ingredient", func(r *model.Recipe) {
			r.Ingredients = model.Ingredients{{Name: "", Quantity: "2"}, {Name: "b"}}
		}, "ingredients"},
		{"no complete step", func(r *model.Recipe) { r.Steps = model.Steps{{Order: 1}} }, "steps"},
		{"negative prep time", func(r *model.Recipe) { r.PrepTime = -1 }, "prep_time"},
		{"negative cook time", func(r *model.Recipe) { r.CookTime = -5 }, "cook_time"},
		{"no servings", func(r *model.Recipe) { r.Servings = 0 }, "servings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(&r)
			_, err := CommitFilter(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidationFailed)

			var verr *apperr.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDraftCommit(t *testing.T) {
	d := NewDraft(NewRecipe(), CreateOptions())
	d.Recipe.Title = "Crêpes"
	d.Recipe.Description = "Pâte à crêpes"
	require.NoError(t, d.SetIngredient(0, "farine", "250 g"))
	d.AddStep()
	require.NoError(t, d.SetStep(1, "Mélanger", ""))

	got, err := d.Commit()
	require.NoError(t, err)
	assert.Equal(t, model.Steps{{Order: 1, Description: "Mélanger"}}, got.Steps)
	assert.Equal(t, 4, got.Servings)
}
