package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/cookbook/backend/internal/apperr"
)

// DraftTTL bounds how long an abandoned edit session is kept.
const DraftTTL = 24 * time.Hour

// DraftStore persists drafts between requests.
type DraftStore interface {
	Save(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// RedisDraftStore keeps drafts as JSON values with a TTL.
type RedisDraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisDraftStore creates a RedisDraftStore.
func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client, ttl: DraftTTL}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// Save stores the draft, assigning an id on first save.
func (s *RedisDraftStore) Save(ctx context.Context, draft *Draft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// Get loads a draft. A missing or expired draft is apperr.ErrNotFound.
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("draft %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}

// MemoryDraftStore is a process-local DraftStore.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

// NewMemoryDraftStore creates an empty MemoryDraftStore.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

// Save stores a serialized copy of the draft.
func (s *MemoryDraftStore) Save(_ context.Context, draft *Draft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = data
	return nil
}

// Get returns a fresh copy of the stored draft.
func (s *MemoryDraftStore) Get(_ context.Context, id string) (*Draft, error) {
	s.mu.Lock()
	data, ok := s.drafts[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, apperr.ErrNotFound)
	}
	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft.
func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}
