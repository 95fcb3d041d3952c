package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/favorites"
)

// FavoritesHandler exposes the favorites of the signed-in user. Anonymous
// reads answer an empty set; anonymous writes are rejected by the service.
type FavoritesHandler struct {
	favorites *favorites.Service
}

func NewFavoritesHandler(favorites *favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	ids, err := h.favorites.GetFavorites(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}

// ListFavoriteRecipes resolves every favorite id to its recipe. Ids whose
// recipe cannot be loaded are left out.
func (h *FavoritesHandler) ListFavoriteRecipes(c *gin.Context) {
	recipes, err := h.favorites.FavoriteRecipes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *FavoritesHandler) GetFavorite(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.favorites.IsFavorite(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "favorite": ok})
}

func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	id := c.Param("id")
	if err := h.favorites.AddToFavorites(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "favorite": true})
}

func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	id := c.Param("id")
	if err := h.favorites.RemoveFromFavorites(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "favorite": false})
}

func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	now, err := h.favorites.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "favorite": now})
}
