package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/types"
	"github.com/jobly/api/internal/validation"
	"github.com/jobly/api/users/errors"
	"github.com/jobly/api/users/models"
	"github.com/jobly/api/users/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// currentUser returns the identity authjwt stored, or the zero value.
func currentUser(c *fiber.Ctx) types.UserContext {
	user, _ := c.Locals(types.UserCtxName).(types.UserContext)
	return user
}

// Create adds a user, possibly an admin, and returns a token for them.
// Endpoint: POST /users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	user, token, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(models.CreatedUserResponse{User: user, Token: token})
}

// List returns every user.
// Endpoint: GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.UsersListResponse{Users: users})
}

// Get returns a user and the ids of the jobs they applied to.
// Endpoint: GET /users/:username
func (h *UserHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("username"))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.UserResponse{User: detail})
}

// Update applies a partial update.
// Endpoint: PATCH /users/:username
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	user, err := h.service.Update(c.UserContext(), currentUser(c), c.Params("username"), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.UserResponse{User: user})
}

// Delete removes a user.
// Endpoint: DELETE /users/:username
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.service.Remove(c.UserContext(), username); err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"deleted": username})
}

// Apply records an application to a job.
// Endpoint: POST /users/:username/jobs/:id
func (h *UserHandler) Apply(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return errors.HandleServiceError(c, fmt.Errorf("%w: %q", errors.ErrInvalidJobID, c.Params("id")))
	}

	if err := h.service.ApplyToJob(c.UserContext(), c.Params("username"), id); err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.ApplicationResponse{Applied: id})
}
