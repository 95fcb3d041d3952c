package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

func recipeRequest(title, category string, difficulty model.Difficulty, prep, cook int) types.RecipeRequest {
	return types.RecipeRequest{
		Title:       title,
		Description: "Une recette de " + title,
		PrepTime:    prep,
		CookTime:    cook,
		Servings:    4,
		Difficulty:  difficulty,
		Category:    category,
		Ingredients: []model.Ingredient{{Name: "beurre", Quantity: "50 g"}},
		Steps:       []model.Step{{Order: 1, Description: "Mélanger"}},
	}
}

func (a *testAPI) seed(t *testing.T, reqs ...types.RecipeRequest) []string {
	t.Helper()
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		r, err := a.recipes.Create(context.Background(), req.Recipe(), nil)
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	return ids
}

type listResponse struct {
	Recipes []model.Recipe `json:"recipes"`
}

func titles(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestListRecipesQuery(t *testing.T) {
	a := setupAPI(t)
	a.seed(t,
		recipeRequest("Tarte aux pommes", "Desserts", model.DifficultyMedium, 30, 45),
		recipeRequest("Éclair au chocolat", "Desserts", model.DifficultyHard, 60, 30),
		recipeRequest("Ratatouille", "Plats principaux", model.DifficultyEasy, 20, 60),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all by name", "", []string{"Éclair au chocolat", "Ratatouille", "Tarte aux pommes"}},
		{"search", "?q=POMMES", []string{"Tarte aux pommes"}},
		{"search description", "?q=recette%20de%20rata", []string{"Ratatouille"}},
		{"category", "?category=Desserts", []string{"Éclair au chocolat", "Tarte aux pommes"}},
		{"category all", "?category=all&sort=time", []string{"Tarte aux pommes", "Ratatouille", "Éclair au chocolat"}},
		{"difficulty", "?difficulty=hard", []string{"Éclair au chocolat"}},
		{"sort difficulty", "?sort=difficulty", []string{"Ratatouille", "Tarte aux pommes", "Éclair au chocolat"}},
		{"no match", "?q=sushi", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := a.do(t, http.MethodGet, "/api/v1/recipes"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, rr.Code)
			var resp listResponse
			decode(t, rr, &resp)
			assert.Equal(t, tt.want, titles(resp.Recipes))
		})
	}
}

func TestGetRecipe(t *testing.T) {
	a := setupAPI(t)
	ids := a.seed(t, recipeRequest("Quiche", "Plats principaux", model.DifficultyEasy, 15, 35))

	rr := a.do(t, http.MethodGet, "/api/v1/recipes/"+ids[0], "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got model.Recipe
	decode(t, rr, &got)
	assert.Equal(t, "Quiche", got.Title)

	rr = a.do(t, http.MethodGet, "/api/v1/recipes/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCategories(t *testing.T) {
	a := setupAPI(t)

	rr := a.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Categories []model.Category `json:"categories"`
	}
	decode(t, rr, &resp)
	assert.Equal(t, model.DefaultCategories(), resp.Categories)
}

func TestRecipeWritesRequireAuth(t *testing.T) {
	a := setupAPI(t)
	req := recipeRequest("Soupe", "Entrées", model.DifficultyEasy, 10, 20)

	rr := a.do(t, http.MethodPost, "/api/v1/recipes", "", req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = a.do(t, http.MethodPost, "/api/v1/recipes", "not-a-token", req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = a.do(t, http.MethodDelete, "/api/v1/recipes/any", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateUpdateDeleteRecipe(t *testing.T) {
	a := setupAPI(t)
	user := a.register(t, "chef@example.com")

	req := recipeRequest("Crêpes", "Desserts", model.DifficultyEasy, 10, 20)
	req.Ingredients = append(req.Ingredients, model.Ingredient{Name: "farine"})
	req.Steps = []model.Step{{Order: 1}, {Order: 2, Description: "Cuire à la poêle"}}

	rr := a.do(t, http.MethodPost, "/api/v1/recipes", user.Token, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created model.Recipe
	decode(t, rr, &created)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.UserID)
	assert.Equal(t, user.User.ID, *created.UserID)
	assert.Len(t, created.Ingredients, 1)
	assert.Equal(t, model.Steps{{Order: 1, Description: "Cuire à la poêle"}}, created.Steps)

	update := recipeRequest("Crêpes sucrées", "Desserts", model.DifficultyEasy, 10, 0)
	rr = a.do(t, http.MethodPut, "/api/v1/recipes/"+created.ID, user.Token, update)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated model.Recipe
	decode(t, rr, &updated)
	assert.Equal(t, "Crêpes sucrées", updated.Title)
	assert.Zero(t, updated.CookTime)

	rr = a.do(t, http.MethodPut, "/api/v1/recipes/missing", user.Token, update)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = a.do(t, http.MethodDelete, "/api/v1/recipes/"+created.ID, user.Token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = a.do(t, http.MethodDelete, "/api/v1/recipes/"+created.ID, user.Token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateRecipeValidation(t *testing.T) {
	a := setupAPI(t)
	user := a.register(t, "chef@example.com")

	req := recipeRequest("Vide", "Desserts", model.DifficultyEasy, 10, 20)
	req.Steps = []model.Step{{Order: 1}}

	rr := a.do(t, http.MethodPost, "/api/v1/recipes", user.Token, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var body middleware.ErrorResponse
	decode(t, rr, &body)
	assert.Equal(t, "steps", body.Field)

	rr = a.do(t, http.MethodPost, "/api/v1/recipes", user.Token, "not an object")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	list, err := a.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUploadImage(t *testing.T) {
	a := setupAPI(t)
	user := a.register(t, "chef@example.com")
	ids := a.seed(t, recipeRequest("Gratin", "Plats principaux", model.DifficultyMedium, 20, 50))

	rr := a.upload(t, "/api/v1/recipes/"+ids[0]+"/image", user.Token, pngBytes)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got model.Recipe
	decode(t, rr, &got)
	assert.True(t, strings.HasPrefix(got.ImageURL, "data:image/png;base64,"))

	rr = a.upload(t, "/api/v1/recipes/"+ids[0]+"/image", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.upload(t, "/api/v1/recipes/missing/image", user.Token, pngBytes)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUploadImageURL(t *testing.T) {
	a := setupAPI(t)
	user := a.register(t, "chef@example.com")
	ids := a.seed(t, recipeRequest("Gratin", "Plats principaux", model.DifficultyMedium, 20, 50))
	path := "/api/v1/recipes/" + ids[0] + "/image"

	imageURL := "https://images.unsplash.com/photo-1.jpg"
	rr := a.do(t, http.MethodPost, path, user.Token, types.ImageURLRequest{URL: imageURL})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got model.Recipe
	decode(t, rr, &got)
	assert.Equal(t, imageURL, got.ImageURL)

	rr = a.do(t, http.MethodPost, path, user.Token, types.ImageURLRequest{URL: "ftp://example.com/file"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = a.do(t, http.MethodPost, path, user.Token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
