// Package storage puts media into an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"time"

	"toptop/internal/config"
)

// ObjectStore is the subset of bucket operations the media service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType, cacheControl string) error
	// PresignPut returns a URL the client can PUT the object body to directly.
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

// New builds the store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	if cfg.MediaBucket == "" {
		return nil, fmt.Errorf("missing MEDIA_BUCKET")
	}
	switch cfg.StorageDriver {
	case config.StorageR2:
		return NewR2Store(ctx, cfg)
	case config.StorageMinIO:
		return NewMinIOStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
