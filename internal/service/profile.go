package service

import (
	"context"
	"fmt"

	"github.com/pageza/cookbook/backend/internal/favorites"
	"github.com/pageza/cookbook/backend/internal/store"
	"github.com/pageza/cookbook/backend/internal/types"
)

// ProfileService summarizes an account for the profile view.
type ProfileService struct {
	auth      *AuthService
	recipes   store.RecipeStore
	favorites *favorites.Service
}

// NewProfileService creates a ProfileService.
func NewProfileService(auth *AuthService, recipes store.RecipeStore, favorites *favorites.Service) *ProfileService {
	return &ProfileService{auth: auth, recipes: recipes, favorites: favorites}
}

// Profile counts the recipes user owns and the recipes they marked as
// favorite. The favorites are read through ctx, which must carry user.
func (s *ProfileService) Profile(ctx context.Context, user types.CurrentUser) (*types.Profile, error) {
	account, err := s.auth.Account(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	owned := 0
	for _, r := range recipes {
		if r.UserID != nil && *r.UserID == user.ID {
			owned++
		}
	}

	ids, err := s.favorites.GetFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	return &types.Profile{
		CurrentUser:    user,
		MemberSince:    account.CreatedAt,
		RecipesCount:   owned,
		FavoritesCount: len(ids),
	}, nil
}
