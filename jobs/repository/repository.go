package repository

import (
	"context"
	"errors"

	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/jobs/models"
)

var (
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when the company already has a job with the same title.
	ErrDuplicateJob = errors.New("duplicate job")

	// ErrUnknownCompany is returned when the referenced company does not exist.
	ErrUnknownCompany = errors.New("unknown company")
)

// Repository defines data access for jobs.
type Repository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)

	// FindAll returns jobs matching filter ordered by company handle, then id.
	FindAll(ctx context.Context, filter *JobFilter) ([]models.Job, error)

	// FindByID returns the job joined with its company.
	FindByID(ctx context.Context, id int) (*models.JobDetail, error)

	Update(ctx context.Context, id int, updates sqlbuild.Assignments) (*models.Job, error)

	Delete(ctx context.Context, id int) error
}
