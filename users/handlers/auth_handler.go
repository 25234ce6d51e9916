package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/validation"
	"github.com/jobly/api/users/errors"
	"github.com/jobly/api/users/models"
	"github.com/jobly/api/users/services"
)

// AuthHandler serves the public token endpoints.
type AuthHandler struct {
	service services.UserService
}

func NewAuthHandler(service services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Token exchanges credentials for a token.
// Endpoint: POST /auth/token
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	token, err := h.service.Authenticate(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.TokenResponse{Token: token})
}

// Register signs up a non-admin user.
// Endpoint: POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	token, err := h.service.Register(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(models.TokenResponse{Token: token})
}
