// Package storage provides the key-value persistence port used for cart
// state, admin table state, token blacklisting and rate limiting. Business
// logic only depends on the KV interface so the backing store can be swapped
// without touching it.
package storage

import (
	"context"
	"time"
)

type KV interface {
	// Get returns the stored value, or "" with a nil error when the key is
	// absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Increment atomically bumps a counter, arming ttl on first increment.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Ping(ctx context.Context) error
}
