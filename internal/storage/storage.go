// Package storage holds product images as opaque blobs. Keys are stable
// paths (e.g., "products/<id>.jpg") stored in Product.Images; nothing above
// this package interprets their internal structure.
package storage

import (
	"context"
	"io"

	"github.com/lvargas/dulceria/internal"
)

// Storage is the blob store for product images.
// Implementations exist for the local filesystem and Cloudflare R2.
type Storage interface {
	// Put stores a blob and returns its public URL/path.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a blob by key.
	// The returned io.ReadCloser must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a blob. Returns nil if the key doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for a stored blob.
	// For local storage this is a server-relative path; for R2 a full HTTPS URL.
	URL(key string) string

	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// NewStorage creates a Storage implementation based on configuration.
func NewStorage(cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "r2":
		return NewR2Storage(R2Config{
			AccountID:   cfg.R2AccountID,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2BucketName,
			PublicURL:   cfg.R2PublicURL,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
