package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is the backend contract shared by the memory and Redis implementations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob pattern (only * is supported)
	DeletePattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)

	Close() error

	Stats() CacheStats
}

// CacheConfig holds backend configuration
type CacheConfig struct {
	Enabled         bool
	Backend         CacheType
	TTL             time.Duration
	Prefix          string
	MaxMemory       int64
	CleanupInterval time.Duration
	Redis           RedisConfig
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	Database int
	PoolSize int
}

// CacheStats provides cache performance statistics
type CacheStats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRatio    float64 `json:"hitRatio"`
	Keys        int64   `json:"keys"`
	MemoryUsage int64   `json:"memoryUsage"`
	Evictions   int64   `json:"evictions"`
}

var (
	// ErrKeyNotFound is returned when a key is not in cache or has expired
	ErrKeyNotFound = errors.New("key not found")

	// ErrCacheUnavailable is returned when the backend cannot be reached
	ErrCacheUnavailable = errors.New("cache unavailable")

	ErrInvalidCacheType = errors.New("invalid cache type")

	// ErrCacheDisabled is returned when caching is turned off or the cache is closed
	ErrCacheDisabled = errors.New("cache disabled")

	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")
)

// DefaultCacheConfig returns an enabled in-memory configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enabled:         true,
		Backend:         CacheTypeMemory,
		TTL:             5 * time.Minute,
		Prefix:          "jobly:",
		MaxMemory:       64 * 1024 * 1024,
		CleanupInterval: time.Minute,
		Redis: RedisConfig{
			Address:  "localhost:6379",
			PoolSize: 10,
		},
	}
}

// CacheType names a cache backend
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// IsValid checks if the cache type is known
func (ct CacheType) IsValid() bool {
	switch ct {
	case CacheTypeMemory, CacheTypeRedis:
		return true
	default:
		return false
	}
}
