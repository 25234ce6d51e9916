// Copyright (c) 2025 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoadFromMap tests configuration loading from an in-memory map.
func TestLoadFromMap(t *testing.T) {
	t.Parallel()

	t.Run("Loads all provided values correctly", func(t *testing.T) {
		t.Parallel()

		testEnv := map[string]string{
			"SECRET_KEY":                 "test-secret",
			"TOKEN_TTL":                  "2h",
			"POSTGRES_HOST":              "test-host",
			"POSTGRES_PORT":              "5433",
			"POSTGRES_USERNAME":          "test-user",
			"POSTGRES_PASSWORD":          "test-pass",
			"POSTGRES_DATABASE":          "test-db",
			"POSTGRES_MAX_OPEN_CONNS":    "55",
			"POSTGRES_MAX_IDLE_CONNS":    "23",
			"POSTGRES_CONN_MAX_LIFETIME": "321",
			"DB_AUTO_MIGRATE":            "true",
			"PORT":                       "9090",
			"DEBUG":                      "true",
			"CACHE_TTL":                  "30m",
			"CACHE_BACKEND":              "redis",
			"REDIS_ADDRESS":              "redis:6380",
			"BCRYPT_WORK_FACTOR":         "4",
			"RATE_LIMIT_LOGIN_MAX":       "7",
		}

		cfg, err := LoadFromMap(testEnv)
		require.NoError(t, err)

		require.Equal(t, "test-secret", cfg.JWT.Secret)
		require.Equal(t, 2*time.Hour, cfg.JWT.TokenTTL)
		require.Equal(t, "test-host", cfg.Database.Postgres.Host)
		require.Equal(t, 5433, cfg.Database.Postgres.Port)
		require.Equal(t, "test-user", cfg.Database.Postgres.Username)
		require.Equal(t, "test-pass", cfg.Database.Postgres.Password)
		require.Equal(t, "test-db", cfg.Database.Postgres.Database)
		require.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
		require.Equal(t, 55, cfg.Database.Postgres.MaxOpenConns)
		require.Equal(t, 23, cfg.Database.Postgres.MaxIdleConns)
		require.Equal(t, 321*time.Second, cfg.Database.Postgres.ConnMaxLifetime)
		require.True(t, cfg.Database.AutoMigrate)
		require.Equal(t, 9090, cfg.Server.Port)
		require.True(t, cfg.Server.Debug)
		require.Equal(t, 30*time.Minute, cfg.Cache.TTL)
		require.Equal(t, "redis", cfg.Cache.Backend)
		require.Equal(t, "redis:6380", cfg.Cache.Redis.Address)
		require.Equal(t, 4, cfg.Security.BcryptCost)
		require.Equal(t, 7, cfg.RateLimits.Login.Max)
	})

	t.Run("Uses defaults for missing values", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadFromMap(map[string]string{"SECRET_KEY": "s"})
		require.NoError(t, err)

		require.Equal(t, 3001, cfg.Server.Port)
		require.Equal(t, "0.0.0.0:3001", cfg.Server.Addr())
		require.Equal(t, "jobly", cfg.Database.Postgres.Database)
		require.Equal(t, "memory", cfg.Cache.Backend)
		require.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
		require.Equal(t, 12, cfg.Security.BcryptCost)
		require.False(t, cfg.Database.AutoMigrate)
	})

	t.Run("Falls back to defaults on unparsable values", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadFromMap(map[string]string{"SECRET_KEY": "s", "PORT": "abc", "CACHE_TTL": "soon"})
		require.NoError(t, err)

		require.Equal(t, 3001, cfg.Server.Port)
		require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("Requires a secret", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFromMap(map[string]string{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "SECRET_KEY is required")
	})

	t.Run("Rejects an unknown cache backend", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFromMap(map[string]string{"SECRET_KEY": "s", "CACHE_BACKEND": "memcached"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "CACHE_BACKEND")
	})

	t.Run("Rejects out of range bcrypt cost and password score", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFromMap(map[string]string{"SECRET_KEY": "s", "BCRYPT_WORK_FACTOR": "99", "MIN_PASSWORD_SCORE": "9"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "BCRYPT_WORK_FACTOR")
		require.Contains(t, err.Error(), "MIN_PASSWORD_SCORE")
	})
}
