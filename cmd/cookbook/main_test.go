package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/auth"
	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/favorites"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/media"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/router"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/store"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

type cliEnv struct {
	server  string
	session string
	recipes *service.RecipeService
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	mem := store.NewMemory()
	logger := logging.Discard()
	authSvc := service.NewAuthService(db, "test-secret", time.Hour, service.NewMemoryRevocationList())
	recipeSvc := service.NewRecipeService(mem, media.NewEncoder(nil), nil, logger)
	favSvc := favorites.NewService(mem, mem, auth.ContextUserSource{}, logger)

	r := router.SetupRouter(router.Handlers{
		Auth:      api.NewAuthHandler(authSvc, service.NewProfileService(authSvc, mem, favSvc)),
		Recipes:   api.NewRecipeHandler(recipeSvc),
		Favorites: api.NewFavoritesHandler(favSvc),
		Drafts:    api.NewDraftHandler(service.NewDraftService(editor.NewMemoryDraftStore(), recipeSvc)),
		Health:    api.NewHealthHandler(db, nil),
	}, router.Options{Validator: authSvc, Logger: logger})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &cliEnv{
		server:  srv.URL + "/api/v1",
		session: filepath.Join(t.TempDir(), "session.json"),
		recipes: recipeSvc,
	}
}

func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", e.server, "--session", e.session}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) seed(t *testing.T, title, category string) string {
	t.Helper()
	r, err := e.recipes.Create(context.Background(), model.Recipe{
		Title:       title,
		Description: "Recette de " + title,
		PrepTime:    5,
		CookTime:    10,
		Servings:    2,
		Difficulty:  model.DifficultyEasy,
		Category:    category,
		Ingredients: model.Ingredients{{Name: "lait", Quantity: "1 l"}},
		Steps:       model.Steps{{Order: 1, Description: "Chauffer"}},
	}, nil)
	require.NoError(t, err)
	return r.ID
}

func TestRecipesCommands(t *testing.T) {
	e := setupCLI(t)
	id := e.seed(t, "Chocolat chaud", "Boissons")
	e.seed(t, "Velouté", "Entrées")

	out, err := e.run(t, "", "recipes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Chocolat chaud")
	assert.Contains(t, out, "Velouté")

	out, err = e.run(t, "", "recipes", "list", "--category", "Boissons", "--view", "grid")
	require.NoError(t, err)
	assert.Contains(t, out, "Chocolat chaud")
	assert.NotContains(t, out, "Velouté")

	out, err = e.run(t, "", "recipes", "list", "--search", "sushi")
	require.NoError(t, err)
	assert.Contains(t, out, "No recipes found")

	_, err = e.run(t, "", "recipes", "list", "--view", "cards")
	assert.Error(t, err)

	out, err = e.run(t, "", "recipes", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Chocolat chaud")
	assert.Contains(t, out, "1. Chauffer")

	out, err = e.run(t, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Plats principaux")
}

func TestSessionAndFavoritesCommands(t *testing.T) {
	e := setupCLI(t)
	id := e.seed(t, "Chocolat chaud", "Boissons")

	_, err := e.run(t, "", "favorites", "add", id)
	assert.ErrorIs(t, err, errNotSignedIn)

	out, err := e.run(t, "secret1\n", "register", "--email", "cli@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as cli@example.com")

	out, err = e.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "cli@example.com")
	assert.Contains(t, out, "Member since")
	assert.Regexp(t, `Favorites\s*│\s*0`, out)

	out, err = e.run(t, "", "favorites", "toggle", id)
	require.NoError(t, err)
	assert.Contains(t, out, "is a favorite")

	out, err = e.run(t, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Chocolat chaud")

	out, err = e.run(t, "", "favorites", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "no longer a favorite")

	out, err = e.run(t, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet")

	out, err = e.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	assert.NoFileExists(t, e.session)

	out, err = e.run(t, "", "login", "--email", "cli@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in")
	assert.FileExists(t, e.session)

	_, err = e.run(t, "", "login", "--email", "cli@example.com", "--password", "wrong-pass")
	assert.Error(t, err)
}

func TestRecipesImageCommand(t *testing.T) {
	e := setupCLI(t)
	id := e.seed(t, "Chocolat chaud", "Boissons")

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 24)...)
	path := filepath.Join(t.TempDir(), "chocolat.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	_, err := e.run(t, "", "recipes", "image", id, "--file", path)
	assert.ErrorIs(t, err, errNotSignedIn)

	_, err = e.run(t, "secret1\n", "register", "--email", "image@example.com")
	require.NoError(t, err)

	_, err = e.run(t, "", "recipes", "image", id, "--file", path, "--max-bytes", "4")
	assert.ErrorIs(t, err, apperr.ErrMediaReadFailed)

	_, err = e.run(t, "", "recipes", "image", id, "--file", filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, apperr.ErrMediaReadFailed)

	out, err := e.run(t, "", "recipes", "image", id, "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Image set on Chocolat chaud")

	out, err = e.run(t, "", "recipes", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Image:      embedded")
	assert.Contains(t, out, "1. Chauffer")

	recipe, err := e.recipes.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(recipe.ImageURL, "data:image/png;base64,"))

	_, err = e.run(t, string(png), "recipes", "image", id, "--file", "-")
	require.NoError(t, err)
}
