package catalog

import (
	"context"
	"sync"
	"time"

	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// Cache holds the most recent catalog snapshot with a TTL and de-duplicates
// concurrent fetches through a pending-request slot: while a load is in
// flight every other Get waits for its result instead of issuing another
// request to the remote store.
type Cache struct {
	logger *gecho.Logger
	store  Store
	ttl    time.Duration

	mu        sync.Mutex
	products  []structs.Product
	fetchedAt time.Time
	pending   *pendingFetch
}

type pendingFetch struct {
	done     chan struct{}
	products []structs.Product
	err      error
}

func NewCache(logger *gecho.Logger, store Store, ttl time.Duration) *Cache {
	return &Cache{
		logger: logger,
		store:  store,
		ttl:    ttl,
	}
}

// Get returns a fresh catalog snapshot, fetching from the remote store when
// the cached one has expired. The returned slice is shared; callers must not
// mutate it.
func (c *Cache) Get(ctx context.Context) ([]structs.Product, error) {
	c.mu.Lock()

	if c.products != nil && time.Since(c.fetchedAt) < c.ttl {
		snapshot := c.products
		c.mu.Unlock()
		return snapshot, nil
	}

	if c.pending != nil {
		pending := c.pending
		c.mu.Unlock()

		select {
		case <-pending.done:
			return pending.products, pending.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	pending := &pendingFetch{done: make(chan struct{})}
	c.pending = pending
	c.mu.Unlock()

	products, err := c.store.Load(ctx)

	c.mu.Lock()
	if err == nil {
		c.products = products
		c.fetchedAt = time.Now()
	}
	pending.products = products
	pending.err = err
	c.pending = nil
	c.mu.Unlock()

	close(pending.done)

	return products, err
}

// Invalidate drops the cached snapshot so the next Get hits the remote store.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// Refresh forces a reload regardless of freshness. On failure the previous
// snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) error {
	products, err := c.store.Load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.products = products
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Age reports how old the cached snapshot is; ok is false when nothing is
// cached.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.products == nil {
		return 0, false
	}
	return time.Since(c.fetchedAt), true
}

// StartRefreshLoop refreshes the snapshot on a fixed cadence until ctx is
// cancelled. A failed refresh keeps the previous snapshot; consumers that
// need a fresh one simply skip that round.
func (c *Cache) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Catalog refresh loop stopped")
				return
			case <-ticker.C:
				if err := c.Refresh(ctx); err != nil {
					c.logger.Warn("Periodic catalog refresh failed", gecho.Field("error", err))
				}
			}
		}
	}()
}
