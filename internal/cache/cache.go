// Package cache memoizes expensive song listings and site counters.
//
// Two backends implement Cache: Memory for a single process and Redis when
// several API instances share results. GetOrSet is the read-through entry
// point used by the services.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a key does not exist or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrMarshal is returned when a value cannot be encoded for storage.
	ErrMarshal = errors.New("cache: failed to marshal value")

	// ErrUnmarshal is returned when a stored value cannot be decoded.
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)

// Cache is a key-value store with per-entry TTL.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the backend's default TTL
//   - Negative: entry never expires
type Cache[V any] interface {
	// Get returns ErrNotFound if the key is missing or expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var group singleflight.Group

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key, or calls fn on a miss and caches
// its result for the TTL fn returns. Concurrent misses on the same key share
// one call to fn. Errors from fn are returned and nothing is cached.
// A failing cache backend degrades to calling fn directly.
//
// fn runs detached from ctx's cancellation, since its result is shared by
// every waiter and not only by the caller that started it.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	// Keys are shared across caches of different value types; the type
	// keeps their flights apart.
	flight := fmt.Sprintf("%T/%s", c, key)
	res, err, _ := group.Do(flight, func() (any, error) {
		v, ttl, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return loaded[V]{val: v, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	l := res.(loaded[V])
	_ = c.Set(ctx, key, l.val, l.ttl)
	return l.val, nil
}
