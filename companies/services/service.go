package services

import (
	"context"
	"errors"
	"fmt"

	companyErrors "github.com/jobly/api/companies/errors"
	"github.com/jobly/api/companies/models"
	"github.com/jobly/api/companies/repository"
	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/pkg/log"
)

// CompanyService defines company operations.
type CompanyService interface {
	Create(ctx context.Context, req *models.CreateCompanyRequest) (*models.Company, error)

	// FindAll lists companies matching the query, ordered by name.
	FindAll(ctx context.Context, query *models.ListCompaniesQuery) ([]models.Company, error)

	// Get returns a company with its jobs.
	Get(ctx context.Context, handle string) (*models.CompanyDetail, error)

	Update(ctx context.Context, handle string, req *models.UpdateCompanyRequest) (*models.Company, error)

	Remove(ctx context.Context, handle string) error
}

// JobsInvalidator drops cached job listings. Removing a company cascades to
// its jobs, so listings must be refreshed.
type JobsInvalidator interface {
	InvalidateListings(ctx context.Context)
}

type companyService struct {
	repo repository.Repository
	jobs JobsInvalidator
}

// NewCompanyService constructs a company service. jobs may be nil.
func NewCompanyService(repo repository.Repository, jobs JobsInvalidator) CompanyService {
	return &companyService{repo: repo, jobs: jobs}
}

func (s *companyService) Create(ctx context.Context, req *models.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	}

	created, err := s.repo.Create(ctx, company)
	if err != nil {
		return nil, mapRepositoryError(err, req.Handle)
	}
	log.InfoWithContext(ctx, "company created: %s", created.Handle)
	return created, nil
}

func (s *companyService) FindAll(ctx context.Context, query *models.ListCompaniesQuery) ([]models.Company, error) {
	filter := &repository.CompanyFilter{}
	if query != nil {
		filter.MinEmployees = query.MinEmployees
		filter.MaxEmployees = query.MaxEmployees
		filter.Name = query.Name
	}

	if filter.MinEmployees != nil && filter.MaxEmployees != nil && *filter.MinEmployees > *filter.MaxEmployees {
		return nil, &sqlbuild.ValidationError{Message: "minEmployees cannot be greater than maxEmployees"}
	}

	companies, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}
	return companies, nil
}

func (s *companyService) Get(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	company, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, mapRepositoryError(err, handle)
	}

	jobs, err := s.repo.FindJobs(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("find company jobs: %w", err)
	}

	return &models.CompanyDetail{Company: *company, Jobs: jobs}, nil
}

func (s *companyService) Update(ctx context.Context, handle string, req *models.UpdateCompanyRequest) (*models.Company, error) {
	updates := updateAssignments(req)
	if len(updates) == 0 {
		return nil, sqlbuild.ErrNoData
	}

	company, err := s.repo.Update(ctx, handle, updates)
	if err != nil {
		return nil, mapRepositoryError(err, handle)
	}
	return company, nil
}

func (s *companyService) Remove(ctx context.Context, handle string) error {
	if err := s.repo.Delete(ctx, handle); err != nil {
		return mapRepositoryError(err, handle)
	}
	if s.jobs != nil {
		s.jobs.InvalidateListings(ctx)
	}
	log.InfoWithContext(ctx, "company removed: %s", handle)
	return nil
}

// updateAssignments lists the fields present in req in a fixed order. An
// explicit null becomes a nil value.
func updateAssignments(req *models.UpdateCompanyRequest) sqlbuild.Assignments {
	var updates sqlbuild.Assignments
	if req == nil {
		return updates
	}
	if req.Name != nil {
		updates = updates.Set("name", *req.Name)
	}
	if req.Description != nil {
		updates = updates.Set("description", *req.Description)
	}
	if req.NumEmployees.Set {
		updates = updates.Set("numEmployees", req.NumEmployees.SQLValue())
	}
	if req.LogoURL.Set {
		updates = updates.Set("logoUrl", req.LogoURL.SQLValue())
	}
	return updates
}

func mapRepositoryError(err error, handle string) error {
	switch {
	case errors.Is(err, repository.ErrCompanyNotFound):
		return fmt.Errorf("%w: %s", companyErrors.ErrCompanyNotFound, handle)
	case errors.Is(err, repository.ErrDuplicateCompany):
		return fmt.Errorf("%w: %s", companyErrors.ErrCompanyAlreadyExists, handle)
	default:
		return err
	}
}
