package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/logging"
)

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores recipe images in a bucket and returns their public URL.
type S3Uploader struct {
	client ObjectPutter
	bucket string
	urlFor func(key string) string
	logger *slog.Logger
}

// NewS3Uploader creates an uploader for the configured bucket.
func NewS3Uploader(cfg *config.S3Config, logger *slog.Logger) *S3Uploader {
	return &S3Uploader{
		client: cfg.Client,
		bucket: cfg.BucketName,
		urlFor: cfg.PublicURL,
		logger: logging.OrDiscard(logger),
	}
}

// Upload stores data under recipes/<recipeID>/ and returns the public URL.
func (u *S3Uploader) Upload(ctx context.Context, recipeID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.MediaError("upload", fmt.Errorf("empty image"))
	}
	mt := mimetype.Detect(data)
	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.NewString(), mt.Extension())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(DetectMIME(data)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := u.urlFor(key)
	u.logger.Info("uploaded recipe image", "recipe_id", recipeID, "url", publicURL)
	return publicURL, nil
}
