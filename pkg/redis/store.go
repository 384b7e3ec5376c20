package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a context-aware key-value store on Redis. It satisfies
// session.Store.
type Store struct {
	db     redis.UniversalClient
	prefix string
}

type StoreOption func(*Store)

// WithKeyPrefix prepends prefix to every key.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) { s.prefix = prefix }
}

func NewStore(client redis.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{db: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig applies cfg.KeyPrefix.
func NewStoreFromConfig(client redis.UniversalClient, cfg Config) *Store {
	return NewStore(client, WithKeyPrefix(cfg.KeyPrefix))
}

// Get returns nil without error for missing keys.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores value with a TTL. Zero ttl means no expiration.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.db.Set(ctx, s.prefix+key, value, ttl).Err()
}

// Delete removes keys in one round trip.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	return s.db.Del(ctx, prefixed...).Err()
}

// TTL returns the remaining lifetime of key. It is negative when the key
// has no expiry or does not exist, as reported by Redis.
func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.db.TTL(ctx, s.prefix+key).Result()
}

// Healthcheck pings the server. It matches httpserver.Check.
func (s *Store) Healthcheck(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
