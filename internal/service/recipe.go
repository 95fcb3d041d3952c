package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/catalog"
	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/media"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/store"
	"github.com/pageza/cookbook/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	recipes  store.RecipeStore
	encoder  *media.Encoder
	uploader ImageUploader
	logger   *slog.Logger
}

// NewRecipeService creates a new RecipeService instance. Without an uploader,
// attached images are embedded as data URLs.
func NewRecipeService(recipes store.RecipeStore, encoder *media.Encoder, uploader ImageUploader, logger *slog.Logger) *RecipeService {
	if encoder == nil {
		encoder = media.NewEncoder(nil)
	}
	return &RecipeService{
		recipes:  recipes,
		encoder:  encoder,
		uploader: uploader,
		logger:   logging.OrDiscard(logger),
	}
}

// Browse loads the collection and runs it through the catalog query.
func (s *RecipeService) Browse(ctx context.Context, q catalog.Query) ([]model.Recipe, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return catalog.Apply(recipes, q), nil
}

// Get retrieves a recipe by ID
func (s *RecipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	return s.recipes.Get(ctx, id)
}

// Categories returns the known categories in display order.
func (s *RecipeService) Categories() []model.Category {
	return model.DefaultCategories()
}

// Create commit-filters recipe and stores it. owner may be nil.
func (s *RecipeService) Create(ctx context.Context, recipe model.Recipe, owner *types.CurrentUser) (*model.Recipe, error) {
	filtered, err := editor.CommitFilter(recipe)
	if err != nil {
		return nil, err
	}
	filtered.ID = ""
	filtered.UserID = nil
	if owner != nil {
		id := owner.ID
		filtered.UserID = &id
	}

	id, err := s.recipes.Create(ctx, &filtered)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	s.logger.Info("recipe created", "recipe_id", id, "title", filtered.Title)
	filtered.ID = id
	return &filtered, nil
}

// Update commit-filters recipe and replaces the stored content of id.
func (s *RecipeService) Update(ctx context.Context, id string, recipe model.Recipe) (*model.Recipe, error) {
	filtered, err := editor.CommitFilter(recipe)
	if err != nil {
		return nil, err
	}
	if err := s.recipes.Update(ctx, id, &filtered, model.ContentColumns...); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	s.logger.Info("recipe updated", "recipe_id", id)
	return s.recipes.Get(ctx, id)
}

// Delete removes a recipe. Deleting a missing recipe succeeds.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	s.logger.Info("recipe deleted", "recipe_id", id)
	return nil
}

// AttachImage stores data as the recipe image: uploaded when an uploader is
// configured, embedded as a data URL otherwise.
func (s *RecipeService) AttachImage(ctx context.Context, id string, data []byte) (*model.Recipe, error) {
	if _, err := s.recipes.Get(ctx, id); err != nil {
		return nil, err
	}

	var imageURL string
	var err error
	if s.uploader != nil {
		imageURL, err = s.uploader.Upload(ctx, id, data)
	} else {
		imageURL, err = s.encoder.EncodeBytes(data)
	}
	if err != nil {
		return nil, err
	}
	return s.setImage(ctx, id, imageURL)
}

// AttachImageURL sets the recipe image from a remote address. With fetch the
// image is downloaded and stored like AttachImage; otherwise the URL is kept.
func (s *RecipeService) AttachImageURL(ctx context.Context, id, imageURL string, fetch bool) (*model.Recipe, error) {
	if !media.IsValidImageURL(imageURL) {
		return nil, apperr.Invalid("url", "is not an image URL")
	}
	if !fetch {
		if _, err := s.recipes.Get(ctx, id); err != nil {
			return nil, err
		}
		return s.setImage(ctx, id, imageURL)
	}

	data, err := s.encoder.Fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return s.AttachImage(ctx, id, data)
}

func (s *RecipeService) setImage(ctx context.Context, id, imageURL string) (*model.Recipe, error) {
	if err := s.recipes.Update(ctx, id, &model.Recipe{ImageURL: imageURL}, "image_url"); err != nil {
		return nil, fmt.Errorf("set recipe image: %w", err)
	}
	return s.recipes.Get(ctx, id)
}
