// Package ratelimit provides rate limiting middleware for the public auth endpoints
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jobly/api/internal/pkg/log"
	platformconfig "github.com/jobly/api/internal/platform/config"
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	// Name is used in logs and the error message (e.g. "login").
	Name string

	Max      int
	Duration time.Duration

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// Custom key generator (optional - uses default IP-based if not provided)
	KeyGenerator func(c *fiber.Ctx) string
}

// configDefault sets default configuration values
func configDefault(config Config) Config {
	if config.Max <= 0 {
		config.Max = 5
	}
	if config.Duration <= 0 {
		config.Duration = 15 * time.Minute
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}
	return config
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	return limiter.New(limiter.Config{
		Max:          cfg.Max,
		Expiration:   cfg.Duration,
		KeyGenerator: cfg.KeyGenerator,
		Next:         cfg.Next,
		LimitReached: func(c *fiber.Ctx) error {
			log.WarnWithContext(c.UserContext(), "[RateLimit] Rate limit exceeded for %s from IP: %s", cfg.Name, c.IP())

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s attempts. Please try again later.", cfg.Name),
				"retryAfter": int(cfg.Duration.Seconds()),
			})
		},
	})
}

// FromConfig builds a limiter from platform configuration. A disabled limit
// yields a pass-through handler.
func FromConfig(name string, rl platformconfig.RateLimitConfig) fiber.Handler {
	if !rl.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return New(Config{Name: name, Max: rl.Max, Duration: rl.Duration})
}
