package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/model"
)

// MockUserStore is a mock implementation of store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserRecord(ctx context.Context, userID string) (*model.UserRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserRecord), args.Error(1)
}

func (m *MockUserStore) CreateUserRecord(ctx context.Context, record *model.UserRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUserStore) AddFavorite(ctx context.Context, userID, recipeID string) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockUserStore) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}
