package repository

import (
	"context"
	"errors"

	"github.com/jobly/api/companies/models"
	"github.com/jobly/api/internal/database/sqlbuild"
)

var (
	// ErrCompanyNotFound is returned when no company has the requested handle.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrDuplicateCompany is returned when the handle or name is taken.
	ErrDuplicateCompany = errors.New("duplicate company")
)

// Repository defines data access for companies.
type Repository interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)

	// FindAll returns companies matching filter ordered by name.
	FindAll(ctx context.Context, filter *CompanyFilter) ([]models.Company, error)

	FindByHandle(ctx context.Context, handle string) (*models.Company, error)

	// FindJobs returns the jobs of a company ordered by id.
	FindJobs(ctx context.Context, handle string) ([]models.CompanyJob, error)

	// Update applies a partial update and returns the updated row.
	Update(ctx context.Context, handle string, updates sqlbuild.Assignments) (*models.Company, error)

	Delete(ctx context.Context, handle string) error
}
