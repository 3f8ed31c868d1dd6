package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// RedisKV implements KV on a shared Redis client with connection pooling and
// retry logic.
type RedisKV struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewRedisKV(logger *gecho.Logger, cfg *structs.Config) *RedisKV {
	return &RedisKV{
		logger: logger,
		config: cfg,
		client: getRedisClient(cfg),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient(cfg *structs.Config) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

func (kv *RedisKV) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (kv *RedisKV) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			// fallback to no jitter if random fails
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))

		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	// Retry on network/connection errors
	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

func (kv *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return kv.withRetry(func() error {
		return kv.client.Set(ctx, key, value, ttl).Err()
	}, kv.config.Cache.MaxRetries)
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	var result string

	err := kv.withRetry(func() error {
		val, err := kv.client.Get(ctx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil // Don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, kv.config.Cache.MaxRetries)

	if err != nil {
		return "", err
	}

	return result, nil
}

func (kv *RedisKV) Delete(ctx context.Context, key string) error {
	return kv.withRetry(func() error {
		return kv.client.Del(ctx, key).Err()
	}, kv.config.Cache.MaxRetries)
}

func (kv *RedisKV) Exists(ctx context.Context, key string) (bool, error) {
	var result bool

	err := kv.withRetry(func() error {
		count, err := kv.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, kv.config.Cache.MaxRetries)

	return result, err
}

func (kv *RedisKV) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var result int64
	err := kv.withRetry(func() error {
		val, err := kv.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return kv.client.Expire(ctx, key, ttl).Err()
		}

		return nil
	}, kv.config.Cache.MaxRetries)

	return result, err
}

func (kv *RedisKV) Ping(ctx context.Context) error {
	return kv.withRetry(func() error {
		return kv.client.Ping(ctx).Err()
	}, kv.config.Cache.MaxRetries)
}

// GetConnectionStats returns Redis connection pool statistics
func (kv *RedisKV) GetConnectionStats() map[string]any {
	stats := kv.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
