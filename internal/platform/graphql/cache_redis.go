package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisKeyPrefix = "secureid:graphql:"
	clearScanBatch        = 100
)

// RedisStore persists cached responses in Redis with TTL-based eviction. Keys
// share a prefix so that Clear never touches unrelated data, and Clear only
// removes the entries of one user scope.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore constructs a Redis-backed response cache. An empty prefix uses
// the default; a zero TTL stores entries without expiry.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get loads cached response data.
//
// Errors: returns ErrCacheMiss when the key is absent; wraps Redis errors.
func (s *RedisStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get graphql cache: %w", err)
	}
	return json.RawMessage(data), nil
}

// Set overwrites any existing entry for key.
func (s *RedisStore) Set(ctx context.Context, key string, data json.RawMessage) error {
	if err := s.client.Set(ctx, s.prefix+key, []byte(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("set graphql cache: %w", err)
	}
	return nil
}

// Clear deletes every key of scope under the store's prefix. Scopes are hex
// digests or anonymousScope, so they hold no SCAN pattern metacharacters.
func (s *RedisStore) Clear(ctx context.Context, scope string) error {
	if scope == "" {
		return nil
	}
	iter := s.client.Scan(ctx, 0, s.prefix+scopePrefix(scope)+"*", clearScanBatch).Iterator()
	batch := make([]string, 0, clearScanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearScanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("clear graphql cache: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan graphql cache: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("clear graphql cache: %w", err)
		}
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
