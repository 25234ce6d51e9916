package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/validation"
	"github.com/jobly/api/jobs/errors"
	"github.com/jobly/api/jobs/models"
	"github.com/jobly/api/jobs/services"
)

type JobHandler struct {
	service services.JobService
}

func NewJobHandler(service services.JobService) *JobHandler {
	return &JobHandler{service: service}
}

func jobID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidJobID, c.Params("id"))
	}
	return id, nil
}

// Create adds a job.
// Endpoint: POST /jobs
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	job, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(models.JobResponse{Job: job})
}

// List returns jobs matching the optional filters.
// Endpoint: GET /jobs?minSalary=&hasEquity=&title=
func (h *JobHandler) List(c *fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return errors.HandleServiceError(c, &validation.Error{Message: "invalid query string"})
	}

	var query models.ListJobsQuery
	if err := validation.DecodeQuery(values, &query); err != nil {
		return errors.HandleServiceError(c, err)
	}

	jobs, err := h.service.FindAll(c.UserContext(), &query)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.JobsListResponse{Jobs: jobs})
}

// Get returns a job with its company.
// Endpoint: GET /jobs/:id
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	job, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.JobResponse{Job: job})
}

// Update applies a partial update of title, salary and equity.
// Endpoint: PATCH /jobs/:id
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	var req models.UpdateJobRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	job, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.JobResponse{Job: job})
}

// Delete removes a job.
// Endpoint: DELETE /jobs/:id
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if err := h.service.Remove(c.UserContext(), id); err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"deleted": id})
}
