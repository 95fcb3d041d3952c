package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/catalog"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

// maxUploadBytes bounds multipart image uploads before they reach the encoder.
const maxUploadBytes = 12 << 20

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// ListRecipes answers the catalog query read from q, category, difficulty
// and sort.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q := catalog.ParseQuery(c.Request.URL.Query())
	recipes, err := h.recipes.Browse(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"query":   q,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.recipes.Categories()})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), req.Recipe(), owner(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), c.Param("id"), req.Recipe())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage sets the recipe image from a multipart "image" file or from a
// JSON {"url": ...} body.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if c.ContentType() == gin.MIMEJSON {
		var req types.ImageURLRequest
		if !bindJSON(c, &req) {
			return
		}
		recipe, err := h.recipes.AttachImageURL(c.Request.Context(), id, req.URL, req.Store)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, recipe)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(middleware.BadRequest(errors.New("image file is required")))
		return
	}
	f, err := file.Open()
	if err != nil {
		_ = c.Error(apperr.MediaError(file.Filename, err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		_ = c.Error(apperr.MediaError(file.Filename, err))
		return
	}
	recipe, err := h.recipes.AttachImage(c.Request.Context(), id, data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
