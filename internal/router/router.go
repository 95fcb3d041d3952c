package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/middleware"
)

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Auth      *api.AuthHandler
	Recipes   *api.RecipeHandler
	Favorites *api.FavoritesHandler
	Drafts    *api.DraftHandler
	Health    *api.HealthHandler
}

// Options configures the middleware chain.
type Options struct {
	Validator   middleware.TokenValidator
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	CORSOrigins []string
	Logger      *slog.Logger // nil discards
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	logger := logging.OrDiscard(opts.Logger)
	router := gin.New()
	router.Use(
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(logger),
		middleware.CORS(opts.CORSOrigins),
	)

	requireAuth := middleware.RequireAuth(opts.Validator)
	optionalAuth := middleware.OptionalAuth(opts.Validator)
	limited := func(chain ...gin.HandlerFunc) []gin.HandlerFunc {
		if opts.RateLimiter != nil {
			chain = append(chain, opts.RateLimiter.Middleware())
		}
		return chain
	}

	router.GET("/health", h.Health.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.HealthCheck)

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", append(limited(), h.Auth.Register)...)
		auth.POST("/login", append(limited(), h.Auth.Login)...)
		auth.POST("/logout", requireAuth, h.Auth.Logout)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	v1.GET("/categories", h.Recipes.ListCategories)

	// Recipe routes
	recipes := v1.Group("/recipes")
	{
		recipes.GET("", h.Recipes.ListRecipes)
		recipes.GET("/:id", h.Recipes.GetRecipe)

		writes := recipes.Group("", limited(requireAuth)...)
		writes.POST("", h.Recipes.CreateRecipe)
		writes.PUT("/:id", h.Recipes.UpdateRecipe)
		writes.DELETE("/:id", h.Recipes.DeleteRecipe)
		writes.POST("/:id/image", h.Recipes.UploadImage)
	}

	// Favorites routes
	favorites := v1.Group("/favorites", optionalAuth)
	{
		favorites.GET("", h.Favorites.ListFavorites)
		favorites.GET("/recipes", h.Favorites.ListFavoriteRecipes)
		favorites.GET("/:id", h.Favorites.GetFavorite)

		writes := favorites.Group("", limited()...)
		writes.POST("/:id", h.Favorites.AddFavorite)
		writes.DELETE("/:id", h.Favorites.RemoveFavorite)
		writes.POST("/:id/toggle", h.Favorites.ToggleFavorite)
	}

	// Draft routes
	drafts := v1.Group("/drafts", requireAuth)
	{
		drafts.POST("", h.Drafts.CreateDraft)
		drafts.GET("/:id", h.Drafts.GetDraft)
		drafts.PUT("/:id", h.Drafts.UpdateDraft)
		drafts.DELETE("/:id", h.Drafts.DeleteDraft)
		drafts.POST("/:id/ingredients", h.Drafts.AddIngredient)
		drafts.DELETE("/:id/ingredients/:index", h.Drafts.RemoveIngredient)
		drafts.POST("/:id/steps", h.Drafts.AddStep)
		drafts.DELETE("/:id/steps/:index", h.Drafts.RemoveStep)
		drafts.POST("/:id/commit", append(limited(), h.Drafts.CommitDraft)...)
	}

	return router
}
