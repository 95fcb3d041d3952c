package service

import (
	"context"
	"time"
)

// ImageUploader stores image bytes somewhere addressable and returns the URL.
type ImageUploader interface {
	Upload(ctx context.Context, recipeID string, data []byte) (string, error)
}

// RevocationList records logged-out token ids until they would have expired.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
