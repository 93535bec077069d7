// Package kv provides the key-addressable record store backing the catalog.
// Records are opaque byte values (JSON in practice) under flat string keys;
// related records share a key prefix (e.g., "product:").
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value store with prefix listing.
// Writes are last-write-wins; Delete is idempotent.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// List returns the values of all keys with the given prefix,
	// in ascending key order.
	List(ctx context.Context, prefix string) ([][]byte, error)
}
