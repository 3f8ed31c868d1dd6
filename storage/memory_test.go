package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVGetSetDelete(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	val, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, val, "a missing key reads as empty, not an error")

	require.NoError(t, kv.Set(ctx, "k", "v", 0))
	val, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	exists, err := kv.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, kv.Delete(ctx, "k"))
	exists, err = kv.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryKVExpiry(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	now := time.Now()
	kv.SetClock(func() time.Time { return now })
	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))

	kv.SetClock(func() time.Time { return now.Add(59 * time.Second) })
	val, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	kv.SetClock(func() time.Time { return now.Add(61 * time.Second) })
	val, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestMemoryKVIncrementWindow(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	now := time.Now()
	kv.SetClock(func() time.Time { return now })

	for want := int64(1); want <= 3; want++ {
		count, err := kv.Increment(ctx, "ratelimit:ip", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// The window TTL is armed by the first increment only.
	kv.SetClock(func() time.Time { return now.Add(61 * time.Second) })
	count, err := kv.Increment(ctx, "ratelimit:ip", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "an expired window restarts the counter")
}
