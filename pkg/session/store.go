package session

import (
	"context"
	"time"
)

// Store is the key-value backend shared by both session tiers.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value under key, or nil and no error when it is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key with a time to live. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
