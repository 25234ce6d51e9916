package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/companies/errors"
	"github.com/jobly/api/companies/models"
	"github.com/jobly/api/companies/services"
	"github.com/jobly/api/internal/validation"
)

type CompanyHandler struct {
	service services.CompanyService
}

func NewCompanyHandler(service services.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Create adds a company.
// Endpoint: POST /companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req models.CreateCompanyRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	company, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(models.CompanyResponse{Company: company})
}

// List returns companies matching the optional filters.
// Endpoint: GET /companies?minEmployees=&maxEmployees=&name=
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return errors.HandleServiceError(c, &validation.Error{Message: "invalid query string"})
	}

	var query models.ListCompaniesQuery
	if err := validation.DecodeQuery(values, &query); err != nil {
		return errors.HandleServiceError(c, err)
	}

	companies, err := h.service.FindAll(c.UserContext(), &query)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.CompaniesListResponse{Companies: companies})
}

// Get returns a company and its jobs.
// Endpoint: GET /companies/:handle
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("handle"))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.CompanyResponse{Company: detail})
}

// Update applies a partial update.
// Endpoint: PATCH /companies/:handle
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateCompanyRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	company, err := h.service.Update(c.UserContext(), c.Params("handle"), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.CompanyResponse{Company: company})
}

// Delete removes a company and, by cascade, its jobs.
// Endpoint: DELETE /companies/:handle
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if err := h.service.Remove(c.UserContext(), handle); err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"deleted": handle})
}
