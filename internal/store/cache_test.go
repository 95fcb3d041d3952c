package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/mocks"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func TestCachedRecipeStoreContract(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	testRecipeStore(t, NewCachedRecipeStore(NewMemory(), client, time.Minute, logging.Discard()))
}

func TestCachedRecipeStoreServesSnapshot(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	ctx := context.Background()

	backing := &mocks.MockRecipeStore{}
	backing.On("List", mock.Anything).Return([]model.Recipe{{ID: "r1", Title: "Tarte"}}, nil).Once()
	s := NewCachedRecipeStore(backing, client, time.Minute, logging.Discard())

	for i := 0; i < 3; i++ {
		recipes, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Tarte", recipes[0].Title)
	}
	backing.AssertNumberOfCalls(t, "List", 1)

	// a write drops the snapshot
	backing.On("Delete", mock.Anything, "r1").Return(nil)
	backing.On("List", mock.Anything).Return([]model.Recipe{}, nil).Once()
	require.NoError(t, s.Delete(ctx, "r1"))

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	backing.AssertExpectations(t)
}

func TestCachedRecipeStoreDiscardsCorruptSnapshot(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	ctx := context.Background()
	require.NoError(t, client.Set(ctx, snapshotKey, "not json", time.Minute).Err())

	mem := NewMemory()
	_, err := mem.Create(ctx, sampleRecipe("Tarte"))
	require.NoError(t, err)

	recipes, err := NewCachedRecipeStore(mem, client, time.Minute, logging.Discard()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}
