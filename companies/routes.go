package companies

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/companies/handlers"
	"github.com/jobly/api/internal/middleware/authrole"
)

type Handlers struct {
	CompanyHandler *handlers.CompanyHandler
}

// RegisterRoutes wires company endpoints. Reads are public, writes need an admin.
func RegisterRoutes(app fiber.Router, handlers *Handlers) {
	group := app.Group("/companies")

	group.Get("/", handlers.CompanyHandler.List)
	group.Get("/:handle", handlers.CompanyHandler.Get)

	admin := authrole.EnsureAdmin()
	group.Post("/", admin, handlers.CompanyHandler.Create)
	group.Patch("/:handle", admin, handlers.CompanyHandler.Update)
	group.Delete("/:handle", admin, handlers.CompanyHandler.Delete)
}
