package jobs

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/middleware/authrole"
	"github.com/jobly/api/jobs/handlers"
)

type Handlers struct {
	JobHandler *handlers.JobHandler
}

// RegisterRoutes wires job endpoints. Reads are public, writes need an admin.
func RegisterRoutes(app fiber.Router, handlers *Handlers) {
	group := app.Group("/jobs")

	group.Get("/", handlers.JobHandler.List)
	group.Get("/:id", handlers.JobHandler.Get)

	admin := authrole.EnsureAdmin()
	group.Post("/", admin, handlers.JobHandler.Create)
	group.Patch("/:id", admin, handlers.JobHandler.Update)
	group.Delete("/:id", admin, handlers.JobHandler.Delete)
}
