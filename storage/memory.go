package storage

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MemoryKV is an in-process KV used in tests and as a degraded fallback when
// Redis is unreachable. Expiry is checked lazily on access.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock overrides the time source, for expiry tests.
func (kv *MemoryKV) SetClock(now func() time.Time) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.now = now
}

func (kv *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	entry, ok := kv.entries[key]
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && kv.now().After(entry.expiresAt) {
		delete(kv.entries, key)
		return "", nil
	}
	return entry.value, nil
}

func (kv *MemoryKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = kv.now().Add(ttl)
	}
	kv.entries[key] = entry
	return nil
}

func (kv *MemoryKV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.entries, key)
	return nil
}

func (kv *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	val, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return val != "", nil
}

func (kv *MemoryKV) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	var count int64
	entry, ok := kv.entries[key]
	if ok && (entry.expiresAt.IsZero() || kv.now().Before(entry.expiresAt)) {
		parsed, err := strconv.ParseInt(entry.value, 10, 64)
		if err == nil {
			count = parsed
		}
	} else {
		entry = memoryEntry{}
		if ttl > 0 {
			entry.expiresAt = kv.now().Add(ttl)
		}
	}

	count++
	entry.value = strconv.FormatInt(count, 10)
	kv.entries[key] = entry
	return count, nil
}

func (kv *MemoryKV) Ping(ctx context.Context) error {
	return nil
}
