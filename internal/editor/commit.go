package editor

import (
	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
)

// CommitFilter drops incomplete ingredients and steps, renumbers the surviving
// steps 1..N and validates the result. It is the only transition from draft to
// persisted state and is used for both create and update.
func CommitFilter(recipe model.Recipe) (model.Recipe, error) {
	out := recipe.Clone()

	ingredients := make(model.Ingredients, 0, len(out.Ingredients))
	for _, ing := range out.Ingredients {
		if ing.Complete() {
			ingredients = append(ingredients, ing)
		}
	}
	steps := make(model.Steps, 0, len(out.Steps))
	for _, step := range out.Steps {
		if step.Complete() {
			steps = append(steps, step)
		}
	}
	renumber(steps)
	out.Ingredients = ingredients
	out.Steps = steps

	if err := Validate(out); err != nil {
		return model.Recipe{}, err
	}
	return out, nil
}

// Validate checks the preconditions of a filtered recipe and names the first
// one that fails.
func Validate(r model.Recipe) error {
	switch {
	case r.Title == "":
		return apperr.Invalid("title", "title is required")
	case r.Description == "":
		return apperr.Invalid("description", "description is required")
	case len(r.Ingredients) == 0:
		return apperr.Invalid("ingredients", "at least one ingredient with a name and a quantity is required")
	case len(r.Steps) == 0:
		return apperr.Invalid("steps", "at least one step with a description is required")
	case r.PrepTime < 0:
		return apperr.Invalid("prep_time", "preparation time cannot be negative")
	case r.CookTime < 0:
		return apperr.Invalid("cook_time", "cook time cannot be negative")
	case r.Servings < 1:
		return apperr.Invalid("servings", "servings must be a positive number")
	}
	return nil
}
