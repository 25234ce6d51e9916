package cache

import (
	"fmt"

	platformconfig "github.com/jobly/api/internal/platform/config"
)

// NewCache creates a backend for the configured cache type
func NewCache(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Backend {
	case CacheTypeMemory:
		return NewMemoryCache(config), nil
	case CacheTypeRedis:
		return NewRedisCache(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, config.Backend)
	}
}

// ConfigFromPlatform translates the service configuration into a CacheConfig
func ConfigFromPlatform(cfg platformconfig.CacheConfig) *CacheConfig {
	return &CacheConfig{
		Enabled:         cfg.Enabled,
		Backend:         CacheType(cfg.Backend),
		TTL:             cfg.TTL,
		Prefix:          cfg.Prefix,
		MaxMemory:       cfg.MaxMemory,
		CleanupInterval: cfg.CleanupInterval,
		Redis: RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
			PoolSize: cfg.Redis.PoolSize,
		},
	}
}

// NewServiceFromPlatform builds the cache service used by the modules. A
// disabled cache still yields a usable service whose lookups always miss.
func NewServiceFromPlatform(cfg platformconfig.CacheConfig) (*GenericCacheService, error) {
	config := ConfigFromPlatform(cfg)
	if !config.Enabled {
		return NewGenericCacheService(nil, config), nil
	}

	backend, err := NewCache(config)
	if err != nil {
		return nil, err
	}
	return NewGenericCacheService(backend, config), nil
}
