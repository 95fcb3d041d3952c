// Package editor maintains the ingredient and step lists of a recipe draft and
// applies the commit filter that turns a draft into a persistable recipe.
package editor

import (
	"errors"
	"fmt"

	"github.com/pageza/cookbook/backend/internal/model"
)

var (
	// ErrIndexOutOfRange is returned for a row index outside 0..len-1.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrBelowFloor is returned when a removal would leave fewer rows than the
	// draft's configured minimum.
	ErrBelowFloor = errors.New("cannot remove below minimum row count")
)

// Options configures the row floors of a draft.
type Options struct {
	MinIngredients int `json:"min_ingredients"`
	MinSteps       int `json:"min_steps"`
}

// CreateOptions keeps at least one ingredient and one step row while composing
// a new recipe.
func CreateOptions() Options {
	return Options{MinIngredients: 1, MinSteps: 1}
}

// EditOptions allows removing every row while editing an existing recipe.
func EditOptions() Options {
	return Options{}
}

// Draft is an in-memory, possibly incomplete recipe under edit.
type Draft struct {
	ID      string       `json:"id"`
	Recipe  model.Recipe `json:"recipe"`
	Options Options      `json:"options"`
	// SourceID is the stored recipe being edited, empty for a new recipe.
	SourceID string `json:"source_id,omitempty"`
}

// NewRecipe returns the starting point of the create flow.
func NewRecipe() model.Recipe {
	return model.Recipe{
		ImageURL:    "https://images.unsplash.com/photo-1495521821757-a1efb6729352?w=500",
		PrepTime:    15,
		CookTime:    30,
		Servings:    4,
		Difficulty:  model.DifficultyEasy,
		Category:    "Plats principaux",
		Ingredients: model.Ingredients{{}},
		Steps:       model.Steps{{Order: 1}},
	}
}

// NewDraft wraps a copy of recipe. Step orders are normalized to 1..N.
func NewDraft(recipe model.Recipe, opts Options) *Draft {
	d := &Draft{Recipe: recipe.Clone(), Options: opts}
	if d.Recipe.Ingredients == nil {
		d.Recipe.Ingredients = model.Ingredients{}
	}
	if d.Recipe.Steps == nil {
		d.Recipe.Steps = model.Steps{}
	}
	d.renumber()
	return d
}

// AddIngredient appends one empty ingredient row.
func (d *Draft) AddIngredient() {
	d.Recipe.Ingredients = append(d.Recipe.Ingredients, model.Ingredient{})
}

// RemoveIngredient removes the row at index.
func (d *Draft) RemoveIngredient(index int) error {
	n := len(d.Recipe.Ingredients)
	if index < 0 || index >= n {
		return fmt.Errorf("ingredient %d of %d: %w", index, n, ErrIndexOutOfRange)
	}
	if n-1 < d.Options.MinIngredients {
		return fmt.Errorf("ingredients: %w (minimum %d)", ErrBelowFloor, d.Options.MinIngredients)
	}
	d.Recipe.Ingredients = append(d.Recipe.Ingredients[:index], d.Recipe.Ingredients[index+1:]...)
	return nil
}

// SetIngredient overwrites the row at index.
func (d *Draft) SetIngredient(index int, name, quantity string) error {
	if index < 0 || index >= len(d.Recipe.Ingredients) {
		return fmt.Errorf("ingredient %d of %d: %w", index, len(d.Recipe.Ingredients), ErrIndexOutOfRange)
	}
	d.Recipe.Ingredients[index] = model.Ingredient{Name: name, Quantity: quantity}
	return nil
}

// AddStep appends an empty step numbered len+1.
func (d *Draft) AddStep() {
	d.Recipe.Steps = append(d.Recipe.Steps, model.Step{Order: len(d.Recipe.Steps) + 1})
}

// RemoveStep removes the step at index and renumbers the rest 1..N.
func (d *Draft) RemoveStep(index int) error {
	n := len(d.Recipe.Steps)
	if index < 0 || index >= n {
		return fmt.Errorf("step %d of %d: %w", index, n, ErrIndexOutOfRange)
	}
	if n-1 < d.Options.MinSteps {
		return fmt.Errorf("steps: %w (minimum %d)", ErrBelowFloor, d.Options.MinSteps)
	}
	d.Recipe.Steps = append(d.Recipe.Steps[:index], d.Recipe.Steps[index+1:]...)
	d.renumber()
	return nil
}

// SetStep overwrites the description and image of the step at index.
func (d *Draft) SetStep(index int, description, imageURL string) error {
	if index < 0 || index >= len(d.Recipe.Steps) {
		return fmt.Errorf("step %d of %d: %w", index, len(d.Recipe.Steps), ErrIndexOutOfRange)
	}
	d.Recipe.Steps[index].Description = description
	d.Recipe.Steps[index].ImageURL = imageURL
	return nil
}

// Commit applies the commit filter to the draft's recipe.
func (d *Draft) Commit() (model.Recipe, error) {
	return CommitFilter(d.Recipe)
}

func (d *Draft) renumber() {
	renumber(d.Recipe.Steps)
}

func renumber(steps model.Steps) {
	for i := range steps {
		steps[i].Order = i + 1
	}
}
