package repository

import (
	"context"
	"errors"

	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/users/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("duplicate username")
	ErrJobNotFound   = errors.New("job not found")
)

// Repository defines data access for users and their applications.
type Repository interface {
	// Create inserts a user whose password is already hashed.
	Create(ctx context.Context, user *models.UserRecord) (*models.User, error)

	// FindByUsername returns the full row, password hash included.
	FindByUsername(ctx context.Context, username string) (*models.UserRecord, error)

	// FindAll returns every user ordered by username.
	FindAll(ctx context.Context) ([]models.User, error)

	// FindAppliedJobs returns the job ids the user applied to, ordered by id.
	FindAppliedJobs(ctx context.Context, username string) ([]int, error)

	Update(ctx context.Context, username string, updates sqlbuild.Assignments) (*models.User, error)

	Delete(ctx context.Context, username string) error

	// Apply records an application. Missing users or jobs fail with
	// ErrUserNotFound or ErrJobNotFound.
	Apply(ctx context.Context, username string, jobID int) error
}
