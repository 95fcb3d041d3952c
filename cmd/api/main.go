package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/auth"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/favorites"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/media"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/router"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("starting cookbook api", "env", cfg.Env, "db_driver", cfg.DBDriver)

	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and rate limiting", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var recipes store.RecipeStore = store.NewGormRecipeStore(db)
	users := store.NewGormUserStore(db)
	var drafts editor.DraftStore = editor.NewMemoryDraftStore()
	var revoked service.RevocationList = service.NewMemoryRevocationList()
	var limiter *middleware.RateLimiter
	if redisClient != nil {
		recipes = store.NewCachedRecipeStore(recipes, redisClient, cfg.CacheTTL, logger)
		drafts = editor.NewRedisDraftStore(redisClient)
		revoked = service.NewRedisRevocationList(redisClient)
		limiter = middleware.NewWriteRateLimiter(redisClient, logger)
	}

	var uploader service.ImageUploader
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return fmt.Errorf("configure s3: %w", err)
		}
		uploader = media.NewS3Uploader(s3cfg, logger)
		logger.Info("recipe images stored in s3", "bucket", s3cfg.BucketName)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, revoked)
	recipeService := service.NewRecipeService(recipes, media.NewEncoder(nil), uploader, logger)
	draftService := service.NewDraftService(drafts, recipeService)
	favoritesService := favorites.NewService(users, recipes, auth.ContextUserSource{}, logger)
	profileService := service.NewProfileService(authService, recipes, favoritesService)

	r := router.SetupRouter(router.Handlers{
		Auth:      api.NewAuthHandler(authService, profileService),
		Recipes:   api.NewRecipeHandler(recipeService),
		Favorites: api.NewFavoritesHandler(favoritesService),
		Drafts:    api.NewDraftHandler(draftService),
		Health:    api.NewHealthHandler(db, redisClient),
	}, router.Options{
		Validator:   authService,
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	srv := server.NewServer(cfg.Addr(), r, logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
