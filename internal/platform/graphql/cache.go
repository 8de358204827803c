package graphql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrCacheMiss is returned by a Store when no live entry exists for a key.
var ErrCacheMiss = errors.New("graphql cache miss")

// Store caches response data. Keys have the form "<scope>:<operation>[:<digest>]"
// where scope identifies the signed in user; Clear removes one scope's entries.
// A store may be shared by many users, so a scope never reads another's keys.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, data json.RawMessage) error
	Clear(ctx context.Context, scope string) error
}

// anonymousScope holds responses of clients without credentials.
const anonymousScope = "anonymous"

// scopeFor derives a cache scope from a user identity. Only a digest is kept so
// subjects and tokens never appear in cache keys.
func scopeFor(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:16])
}

func scopePrefix(scope string) string {
	return scope + ":"
}

// cacheKey identifies a query by scope, operation name and a digest of its variables.
func cacheKey(scope string, req Request) (string, error) {
	key := scopePrefix(scope) + req.OperationName
	if req.Variables == nil {
		return key, nil
	}
	vars, err := json.Marshal(req.Variables)
	if err != nil {
		return "", fmt.Errorf("encode variables: %w", err)
	}
	sum := sha256.Sum256(vars)
	return key + ":" + hex.EncodeToString(sum[:]), nil
}

type cachedResponse struct {
	data     json.RawMessage
	storedAt time.Time
}

// MemoryStore is an in-process Store. A zero TTL keeps entries until Clear.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedResponse
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]cachedResponse),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if s.ttl > 0 && s.now().Sub(entry.storedAt) >= s.ttl {
		return nil, ErrCacheMiss
	}
	return append(json.RawMessage(nil), entry.data...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = cachedResponse{
		data:     append(json.RawMessage(nil), data...),
		storedAt: s.now(),
	}
	return nil
}

// Clear removes the entries of scope. An empty scope removes nothing.
func (s *MemoryStore) Clear(_ context.Context, scope string) error {
	if scope == "" {
		return nil
	}
	prefix := scopePrefix(scope)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
