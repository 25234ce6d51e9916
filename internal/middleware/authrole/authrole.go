// Package authrole guards routes by the UserContext that authjwt stored.
// Every failure answers 401, matching the API's existing clients.
package authrole

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/types"
)

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}

// EnsureLoggedIn requires any authenticated user.
func EnsureLoggedIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(types.UserCtxName).(types.UserContext); !ok {
			return unauthorized(c, "authentication required")
		}
		return c.Next()
	}
}

// EnsureAdmin requires an authenticated admin.
func EnsureAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(types.UserCtxName).(types.UserContext)
		if !ok || !user.IsAdmin {
			return unauthorized(c, "admin access required")
		}
		return c.Next()
	}
}

// EnsureCorrectUserOrAdmin requires an admin, or the user named by the route
// parameter param.
func EnsureCorrectUserOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(types.UserCtxName).(types.UserContext)
		if !ok {
			return unauthorized(c, "authentication required")
		}
		if user.IsAdmin || user.Username == c.Params(param) {
			return c.Next()
		}
		return unauthorized(c, "access restricted to the account owner or an admin")
	}
}
