package types

import "github.com/pageza/cookbook/backend/internal/model"

// RecipeRequest is the request body for creating or updating a recipe.
// The same body is commit-filtered on both paths.
type RecipeRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ImageURL    string             `json:"image_url"`
	PrepTime    int                `json:"prep_time"`
	CookTime    int                `json:"cook_time"`
	Servings    int                `json:"servings"`
	Difficulty  model.Difficulty   `json:"difficulty"`
	Category    string             `json:"category"`
	Ingredients []model.Ingredient `json:"ingredients"`
	Steps       []model.Step       `json:"steps"`
}

// Recipe converts the request into a model value.
func (r RecipeRequest) Recipe() model.Recipe {
	return model.Recipe{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		Category:    r.Category,
		Ingredients: model.Ingredients(r.Ingredients),
		Steps:       model.Steps(r.Steps),
	}
}

// ImageURLRequest asks the server to fetch and embed a remote image.
type ImageURLRequest struct {
	URL   string `json:"url" binding:"required"`
	Store bool   `json:"store"`
}

// CreateDraftRequest opens an edit session. With RecipeID set the draft starts
// from the stored recipe using the edit-flow floor; otherwise the create-flow
// floor and defaults apply.
type CreateDraftRequest struct {
	RecipeID string `json:"recipe_id"`
}

// UpdateIngredientRequest sets one ingredient line of a draft.
type UpdateIngredientRequest struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// UpdateStepRequest sets one step of a draft.
type UpdateStepRequest struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// UpdateDraftRequest replaces draft metadata and optionally individual rows.
type UpdateDraftRequest struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	ImageURL    *string                   `json:"image_url"`
	PrepTime    *int                      `json:"prep_time"`
	CookTime    *int                      `json:"cook_time"`
	Servings    *int                      `json:"servings"`
	Difficulty  *model.Difficulty         `json:"difficulty"`
	Category    *string                   `json:"category"`
	Ingredients []UpdateIngredientRequest `json:"ingredients"`
	Steps       []UpdateStepRequest       `json:"steps"`
}

// CredentialsRequest is the body of register and login calls.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  CurrentUser `json:"user"`
}
