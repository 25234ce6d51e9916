package users

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/middleware/authrole"
	"github.com/jobly/api/internal/middleware/ratelimit"
	platformconfig "github.com/jobly/api/internal/platform/config"
	"github.com/jobly/api/users/handlers"
)

type Handlers struct {
	UserHandler *handlers.UserHandler
	AuthHandler *handlers.AuthHandler
}

// RegisterRoutes wires the auth and user endpoints.
func RegisterRoutes(app fiber.Router, handlers *Handlers, limits platformconfig.RateLimitsConfig) {
	auth := app.Group("/auth")
	auth.Post("/token", ratelimit.FromConfig("login", limits.Login), handlers.AuthHandler.Token)
	auth.Post("/register", ratelimit.FromConfig("register", limits.Register), handlers.AuthHandler.Register)

	group := app.Group("/users")

	admin := authrole.EnsureAdmin()
	group.Get("/", admin, handlers.UserHandler.List)
	group.Post("/", admin, handlers.UserHandler.Create)

	owner := authrole.EnsureCorrectUserOrAdmin("username")
	group.Get("/:username", owner, handlers.UserHandler.Get)
	group.Patch("/:username", owner, handlers.UserHandler.Update)
	group.Delete("/:username", owner, handlers.UserHandler.Delete)
	group.Post("/:username/jobs/:id", owner, handlers.UserHandler.Apply)
}
