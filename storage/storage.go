// Package storage puts property media into an object store.
package storage

import (
	"context"
	"errors"
	"io"

	"realestate-server/confs"
	"realestate-server/logger"
)

var ErrNotFound = errors.New("object not found")

// Object describes a stored object.
type Object struct {
	Key         string
	URL         string
	Size        int64
	ContentType string
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Open returns an S3-compatible store when an endpoint is configured and an
// in-process store otherwise. The in-process store serves under /media.
func Open(ctx context.Context, cfg confs.StorageConfig) (Store, error) {
	if cfg.Endpoint == "" {
		logger.Log.Warn("STORAGE_ENDPOINT not set, keeping media in memory")
		return NewMemoryStore(cfg.PublicURL + "/media"), nil
	}

	store, err := NewMinioStore(cfg)
	if err != nil {
		return nil, err
	}
	created, err := store.EnsureBucket(ctx)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Log.Infof("Created storage bucket %s", cfg.Bucket)
	}
	return store, nil
}
