package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore serves a fixed snapshot and counts remote loads. A non-nil
// gate blocks Load until the gate closes, to line up concurrent callers.
type countingStore struct {
	mu       sync.Mutex
	products []structs.Product
	loadErr  error
	loads    int64
	gate     chan struct{}
}

func (cs *countingStore) Load(ctx context.Context) ([]structs.Product, error) {
	atomic.AddInt64(&cs.loads, 1)
	if cs.gate != nil {
		<-cs.gate
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.loadErr != nil {
		return nil, cs.loadErr
	}
	return cs.products, nil
}

func (cs *countingStore) Replace(ctx context.Context, products []structs.Product) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.products = products
	return nil
}

func (cs *countingStore) setError(err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.loadErr = err
}

func TestCacheServesSnapshotWithinTTL(t *testing.T) {
	store := &countingStore{products: []structs.Product{{ID: "p1", Title: "Борщ"}}}
	cache := NewCache(gecho.NewDefaultLogger(), store, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		products, err := cache.Get(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&store.loads))
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	store := &countingStore{products: []structs.Product{{ID: "p1", Title: "Борщ"}}}
	cache := NewCache(gecho.NewDefaultLogger(), store, time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	cache.Invalidate()
	_, err = cache.Get(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&store.loads))
}

func TestCacheDeduplicatesConcurrentFetches(t *testing.T) {
	store := &countingStore{
		products: []structs.Product{{ID: "p1", Title: "Борщ"}},
		gate:     make(chan struct{}),
	}
	cache := NewCache(gecho.NewDefaultLogger(), store, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = cache.Get(ctx)
		}(i)
	}

	// Let the callers pile up on the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(store.gate)
	wg.Wait()

	for _, err := range results {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&store.loads), "concurrent callers share one remote load")
}

func TestCacheRefreshKeepsSnapshotOnFailure(t *testing.T) {
	store := &countingStore{products: []structs.Product{{ID: "p1", Title: "Борщ"}}}
	cache := NewCache(gecho.NewDefaultLogger(), store, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Refresh(ctx))

	store.setError(errors.New("github is down"))
	require.Error(t, cache.Refresh(ctx))

	products, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestCacheGetHonorsContextWhileWaiting(t *testing.T) {
	store := &countingStore{
		products: []structs.Product{{ID: "p1", Title: "Борщ"}},
		gate:     make(chan struct{}),
	}
	cache := NewCache(gecho.NewDefaultLogger(), store, time.Minute)

	go func() {
		_, _ = cache.Get(context.Background())
	}()
	// Wait until the fetch is in flight so the next Get lands on the
	// pending slot.
	for atomic.LoadInt64(&store.loads) == 0 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(store.gate)
}

func TestCacheAge(t *testing.T) {
	store := &countingStore{products: []structs.Product{{ID: "p1", Title: "Борщ"}}}
	cache := NewCache(gecho.NewDefaultLogger(), store, time.Minute)

	_, ok := cache.Age()
	assert.False(t, ok, "an empty cache has no age")

	require.NoError(t, cache.Refresh(context.Background()))
	age, ok := cache.Age()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, age, time.Duration(0))
}
