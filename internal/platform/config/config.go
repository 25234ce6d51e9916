package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	JWT        JWTConfig        `json:"jwt"`
	Security   SecurityConfig   `json:"security"`
	Cache      CacheConfig      `json:"cache"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	WebDomain string `json:"webDomain"`
	Debug     bool   `json:"debug"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres    PostgreSQLConfig `json:"postgres"`
	AutoMigrate bool             `json:"autoMigrate"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret   string        `json:"secret"`
	TokenTTL time.Duration `json:"tokenTtl"`
}

// SecurityConfig holds password policy
type SecurityConfig struct {
	BcryptCost       int `json:"bcryptCost"`
	MinPasswordScore int `json:"minPasswordScore"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	Backend         string        `json:"backend"`
	TTL             time.Duration `json:"ttl"`
	Prefix          string        `json:"prefix"`
	MaxMemory       int64         `json:"maxMemory"`
	CleanupInterval time.Duration `json:"cleanupInterval"`
	Redis           RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	Database int    `json:"database"`
	PoolSize int    `json:"poolSize"`
}

// RateLimitConfig holds rate limiting configuration for a specific endpoint
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled"`
	Max      int           `json:"max"`
	Duration time.Duration `json:"duration"`
}

// RateLimitsConfig holds rate limiting configuration for the public auth endpoints
type RateLimitsConfig struct {
	Login    RateLimitConfig `json:"login"`
	Register RateLimitConfig `json:"register"`
}

// LoadFromEnv loads configuration from the environment.
// Precedence: explicit environment variables, then a .env file, then defaults.
func LoadFromEnv() (*Config, error) {
	// godotenv never overrides variables that are already set.
	envPaths := []string{".env", "../.env", "../../.env"}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}
	if loadErr != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	return load(func(key string) (string, bool) {
		v := os.Getenv(key)
		return v, v != ""
	})
}

// LoadFromMap loads configuration from an in-memory map.
// Tests use it instead of touching process environment variables.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	return load(func(key string) (string, bool) {
		v, ok := envMap[key]
		return v, ok
	})
}

type lookupFunc func(key string) (string, bool)

func load(lookup lookupFunc) (*Config, error) {
	e := env{lookup: lookup}

	config := &Config{
		Server: ServerConfig{
			Host:      e.get("HOST", "0.0.0.0"),
			Port:      e.getInt("PORT", 3001),
			WebDomain: e.get("WEB_DOMAIN", "*"),
			Debug:     e.getBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			AutoMigrate: e.getBool("DB_AUTO_MIGRATE", false),
			Postgres: PostgreSQLConfig{
				Host:            e.get("POSTGRES_HOST", "localhost"),
				Port:            e.getInt("POSTGRES_PORT", 5432),
				Username:        e.get("POSTGRES_USERNAME", ""),
				Password:        e.get("POSTGRES_PASSWORD", ""),
				Database:        e.get("POSTGRES_DATABASE", "jobly"),
				SSLMode:         e.get("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    e.getInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    e.getInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(e.getInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
			},
		},
		JWT: JWTConfig{
			Secret:   e.get("SECRET_KEY", ""),
			TokenTTL: e.getDuration("TOKEN_TTL", 24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:       e.getInt("BCRYPT_WORK_FACTOR", 12),
			MinPasswordScore: e.getInt("MIN_PASSWORD_SCORE", 1),
		},
		Cache: CacheConfig{
			Enabled:         e.getBool("CACHE_ENABLED", true),
			Backend:         e.get("CACHE_BACKEND", "memory"),
			TTL:             e.getDuration("CACHE_TTL", 5*time.Minute),
			Prefix:          e.get("CACHE_PREFIX", "jobly:"),
			MaxMemory:       e.getInt64("CACHE_MAX_MEMORY", 32*1024*1024),
			CleanupInterval: e.getDuration("CACHE_CLEANUP_INTERVAL", time.Minute),
			Redis: RedisConfig{
				Address:  e.get("REDIS_ADDRESS", "localhost:6379"),
				Password: e.get("REDIS_PASSWORD", ""),
				Database: e.getInt("REDIS_DATABASE", 0),
				PoolSize: e.getInt("REDIS_POOL_SIZE", 10),
			},
		},
		RateLimits: RateLimitsConfig{
			Login: RateLimitConfig{
				Enabled:  e.getBool("RATE_LIMIT_LOGIN_ENABLED", true),
				Max:      e.getInt("RATE_LIMIT_LOGIN_MAX", 5),
				Duration: e.getDuration("RATE_LIMIT_LOGIN_DURATION", 15*time.Minute),
			},
			Register: RateLimitConfig{
				Enabled:  e.getBool("RATE_LIMIT_REGISTER_ENABLED", true),
				Max:      e.getInt("RATE_LIMIT_REGISTER_MAX", 10),
				Duration: e.getDuration("RATE_LIMIT_REGISTER_DURATION", time.Hour),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.JWT.Secret) == "" {
		errors = append(errors, "SECRET_KEY is required")
	}
	if c.JWT.TokenTTL <= 0 {
		errors = append(errors, "TOKEN_TTL must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		errors = append(errors, fmt.Sprintf("BCRYPT_WORK_FACTOR must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Security.MinPasswordScore < 0 || c.Security.MinPasswordScore > 4 {
		errors = append(errors, "MIN_PASSWORD_SCORE must be between 0 and 4")
	}

	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, c.Cache.Backend) {
		errors = append(errors, fmt.Sprintf("CACHE_BACKEND must be one of: %s", strings.Join(validBackends, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// env reads typed values through a lookup function, falling back to defaults
// when a key is missing or unparsable.
type env struct {
	lookup lookupFunc
}

func (e env) get(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok {
		return value
	}
	return defaultValue
}

func (e env) getInt(key string, defaultValue int) int {
	if value, ok := e.lookup(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e env) getInt64(key string, defaultValue int64) int64 {
	if value, ok := e.lookup(key); ok {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e env) getBool(key string, defaultValue bool) bool {
	if value, ok := e.lookup(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e env) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := e.lookup(key); ok {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
