package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"secureid/pkg/platform/circuit"
)

// ResilientStore fronts a remote Store with an in-process fallback. Every
// write also lands in the fallback; once the circuit opens, reads and writes
// skip the remote store until a probe succeeds.
type ResilientStore struct {
	primary  Store
	fallback *MemoryStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewResilientStore(primary Store, fallback *MemoryStore, logger *slog.Logger, opts ...circuit.Option) *ResilientStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ResilientStore{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("graphql_cache", opts...),
		logger:   logger,
	}
}

// Get reads the remote store while the circuit is closed. A remote miss is
// authoritative; a remote failure falls back to the in-process copy.
func (s *ResilientStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if !s.breaker.Allow() {
		return s.fallback.Get(ctx, key)
	}
	data, err := s.primary.Get(ctx, key)
	if err == nil || errors.Is(err, ErrCacheMiss) {
		s.recordSuccess(ctx)
		return data, err
	}
	s.recordFailure(ctx, err)
	return s.fallback.Get(ctx, key)
}

// Set never fails because of the remote store.
func (s *ResilientStore) Set(ctx context.Context, key string, data json.RawMessage) error {
	if err := s.fallback.Set(ctx, key, data); err != nil {
		return err
	}
	if !s.breaker.Allow() {
		return nil
	}
	if err := s.primary.Set(ctx, key, data); err != nil {
		s.recordFailure(ctx, err)
		return nil
	}
	s.recordSuccess(ctx)
	return nil
}

// Clear always reaches the remote store, even with the circuit open, so that
// stale entries cannot resurface once it recovers.
func (s *ResilientStore) Clear(ctx context.Context, scope string) error {
	if err := s.fallback.Clear(ctx, scope); err != nil {
		return err
	}
	if err := s.primary.Clear(ctx, scope); err != nil {
		s.recordFailure(ctx, err)
		return err
	}
	s.recordSuccess(ctx)
	return nil
}

func (s *ResilientStore) recordFailure(ctx context.Context, err error) {
	// Cancellation says nothing about the store's health.
	if ctx.Err() != nil {
		return
	}
	if change := s.breaker.RecordFailure(); change.Opened {
		s.logger.ErrorContext(ctx, "circuit breaker opened, using in-process cache",
			"circuit", s.breaker.Name(),
			"error", err,
		)
	}
}

func (s *ResilientStore) recordSuccess(ctx context.Context) {
	if change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "circuit breaker closed",
			"circuit", s.breaker.Name(),
		)
	}
}

var _ Store = (*ResilientStore)(nil)
