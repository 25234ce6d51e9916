package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/validation"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("duplicate username")
	ErrJobNotFound        = errors.New("job not found")
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrAdminOnlyField     = errors.New("only an admin can change isAdmin")
	ErrInvalidJobID       = errors.New("job id must be a positive integer")
	ErrInvalidRequest     = errors.New("invalid request")
)

const (
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeDuplicateUser      = "DUPLICATE_USER"
	CodeJobNotFound        = "JOB_NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternalError      = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError writes the HTTP response for err.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var buildErr *sqlbuild.ValidationError
	var reqErr *validation.Error

	switch {
	case errors.As(err, &reqErr):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: reqErr.Message, Details: reqErr.Fields})
	case errors.As(err, &buildErr):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: buildErr.Message})
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidJobID):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: err.Error()})
	case errors.Is(err, ErrWeakPassword):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeWeakPassword, Message: err.Error()})
	case errors.Is(err, ErrUserAlreadyExists):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeDuplicateUser, Message: err.Error()})
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Code: CodeInvalidCredentials, Message: err.Error()})
	case errors.Is(err, ErrAdminOnlyField):
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Code: CodeUnauthorized, Message: err.Error()})
	case errors.Is(err, ErrUserNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Code: CodeUserNotFound, Message: err.Error()})
	case errors.Is(err, ErrJobNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Code: CodeJobNotFound, Message: err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: "An unexpected error occurred"})
	}
}
