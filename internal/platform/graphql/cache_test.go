package graphql

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("miss, set, hit", func(t *testing.T) {
		store := NewMemoryStore(0)
		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)

		require.NoError(t, store.Set(ctx, "k", json.RawMessage(`{"a":1}`)))
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(got))
	})

	t.Run("returned data is a copy", func(t *testing.T) {
		store := NewMemoryStore(0)
		data := json.RawMessage(`{"a":1}`)
		require.NoError(t, store.Set(ctx, "k", data))
		data[2] = 'b'

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		got[2] = 'c'

		again, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(again))
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		require.NoError(t, store.Set(ctx, "k", json.RawMessage(`1`)))
		now = now.Add(59 * time.Second)
		_, err := store.Get(ctx, "k")
		require.NoError(t, err)

		now = now.Add(time.Second)
		_, err = store.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("clear removes only the scope's entries", func(t *testing.T) {
		store := NewMemoryStore(0)
		require.NoError(t, store.Set(ctx, "alice:a", json.RawMessage(`1`)))
		require.NoError(t, store.Set(ctx, "alice:b", json.RawMessage(`2`)))
		require.NoError(t, store.Set(ctx, "alice2:a", json.RawMessage(`3`)))
		require.NoError(t, store.Set(ctx, "bob:a", json.RawMessage(`4`)))
		require.NoError(t, store.Clear(ctx, "alice"))

		_, err := store.Get(ctx, "alice:a")
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = store.Get(ctx, "alice:b")
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = store.Get(ctx, "alice2:a")
		assert.NoError(t, err)
		_, err = store.Get(ctx, "bob:a")
		assert.NoError(t, err)
	})

	t.Run("empty scope clears nothing", func(t *testing.T) {
		store := NewMemoryStore(0)
		require.NoError(t, store.Set(ctx, "alice:a", json.RawMessage(`1`)))
		require.NoError(t, store.Clear(ctx, ""))

		_, err := store.Get(ctx, "alice:a")
		assert.NoError(t, err)
	})
}

func (s *MemoryStore) entriesWithPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
