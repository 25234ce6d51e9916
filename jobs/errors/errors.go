package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/validation"
)

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrJobAlreadyExists = errors.New("job already exists")
	ErrUnknownCompany   = errors.New("company does not exist")
	ErrInvalidJobID     = errors.New("invalid job id")
	ErrInvalidEquity    = errors.New("equity must be a number between 0 and 1")
)

const (
	CodeJobNotFound    = "JOB_NOT_FOUND"
	CodeDuplicateJob   = "DUPLICATE_JOB"
	CodeUnknownCompany = "UNKNOWN_COMPANY"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
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
	case errors.Is(err, ErrInvalidJobID), errors.Is(err, ErrInvalidEquity):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: err.Error()})
	case errors.Is(err, ErrJobAlreadyExists):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeDuplicateJob, Message: err.Error()})
	case errors.Is(err, ErrUnknownCompany):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeUnknownCompany, Message: err.Error()})
	case errors.Is(err, ErrJobNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Code: CodeJobNotFound, Message: err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: "An unexpected error occurred"})
	}
}
