package authjwt

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/pkg/log"
	"github.com/jobly/api/internal/types"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(tokenString string) (types.UserContext, error)
}

// Config defines the config for the JWT middleware.
type Config struct {
	Parser TokenParser
	// The context key to store the UserContext.
	UserCtxName string
}

// New returns a middleware that stores the token's UserContext in Locals when
// the request carries a valid bearer token. Requests without a token, or with
// an invalid one, continue anonymously; the authrole middleware decides access.
func New(cfg Config) fiber.Handler {
	userKey := cfg.UserCtxName
	if userKey == "" {
		userKey = types.UserCtxName
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(types.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, types.BearerPrefix) {
			return c.Next()
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, types.BearerPrefix))
		user, err := cfg.Parser.Parse(tokenString)
		if err != nil {
			log.WarnWithContext(c.UserContext(), "[authjwt] ignoring invalid token: %v", err)
			return c.Next()
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}
