// Package storage provides the key-value store behind per-patient visit
// drafts and dismissal flags. The interface is small on purpose so tests can
// substitute the in-memory implementation for Redis.
package storage

import (
	"context"
	"time"
)

// Store is a string key-value store with optional expiry.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes key=value. A zero ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
