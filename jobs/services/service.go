package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jobly/api/internal/cache"
	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/pkg/log"
	jobErrors "github.com/jobly/api/jobs/errors"
	"github.com/jobly/api/jobs/models"
	"github.com/jobly/api/jobs/repository"
)

const (
	// listCachePrefix namespaces cached FindAll results.
	listCachePrefix  = "jobs:list"
	listCachePattern = listCachePrefix + ":*"
)

// JobService defines job operations.
type JobService interface {
	Create(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error)

	// FindAll lists jobs matching the query, ordered by company then id.
	FindAll(ctx context.Context, query *models.ListJobsQuery) ([]models.Job, error)

	// Get returns a job with its company.
	Get(ctx context.Context, id int) (*models.JobDetail, error)

	Update(ctx context.Context, id int, req *models.UpdateJobRequest) (*models.Job, error)

	Remove(ctx context.Context, id int) error

	// InvalidateListings drops every cached FindAll result.
	InvalidateListings(ctx context.Context)
}

type jobService struct {
	repo         repository.Repository
	cacheService *cache.GenericCacheService
}

// NewJobService constructs a job service. cacheService may be nil.
func NewJobService(repo repository.Repository, cacheService *cache.GenericCacheService) JobService {
	return &jobService{repo: repo, cacheService: cacheService}
}

func (s *jobService) Create(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error) {
	if err := validateEquity(req.Equity); err != nil {
		return nil, err
	}

	job, err := s.repo.Create(ctx, &models.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		return nil, mapRepositoryError(err, req.Title)
	}

	s.InvalidateListings(ctx)
	log.InfoWithContext(ctx, "job created: %d (%s)", job.ID, job.CompanyHandle)
	return job, nil
}

func (s *jobService) FindAll(ctx context.Context, query *models.ListJobsQuery) ([]models.Job, error) {
	filter := &repository.JobFilter{}
	if query != nil {
		filter.MinSalary = query.MinSalary
		filter.HasEquity = query.HasEquity
		filter.Title = query.Title
	}

	key := s.listCacheKey(filter)
	if s.cacheEnabled() {
		var cached []models.Job
		if err := s.cacheService.GetCached(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	jobs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}

	if s.cacheEnabled() {
		if err := s.cacheService.CacheData(ctx, key, jobs); err != nil {
			log.WarnWithContext(ctx, "failed to cache job listing: %v", err)
		}
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id int) (*models.JobDetail, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, strconv.Itoa(id))
	}
	return job, nil
}

func (s *jobService) Update(ctx context.Context, id int, req *models.UpdateJobRequest) (*models.Job, error) {
	updates := updateAssignments(req)
	if len(updates) == 0 {
		return nil, sqlbuild.ErrNoData
	}
	if err := validateEquity(req.Equity.Ptr()); err != nil {
		return nil, err
	}

	job, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, mapRepositoryError(err, strconv.Itoa(id))
	}

	s.InvalidateListings(ctx)
	return job, nil
}

func (s *jobService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err, strconv.Itoa(id))
	}

	s.InvalidateListings(ctx)
	log.InfoWithContext(ctx, "job removed: %d", id)
	return nil
}

func (s *jobService) InvalidateListings(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cacheService.InvalidatePattern(ctx, listCachePattern); err != nil {
		log.WarnWithContext(ctx, "failed to invalidate job listings: %v", err)
	}
}

func (s *jobService) cacheEnabled() bool {
	return s.cacheService != nil && s.cacheService.IsEnabled()
}

func (s *jobService) listCacheKey(filter *repository.JobFilter) string {
	if s.cacheService == nil {
		return ""
	}
	return s.cacheService.GenerateHashKey(listCachePrefix, map[string]interface{}{
		"minSalary": filter.MinSalary,
		"hasEquity": filter.HasEquity,
		"title":     filter.Title,
	})
}

// updateAssignments lists the fields present in req in a fixed order. An
// explicit null becomes a nil value.
func updateAssignments(req *models.UpdateJobRequest) sqlbuild.Assignments {
	var updates sqlbuild.Assignments
	if req == nil {
		return updates
	}
	if req.Title != nil {
		updates = updates.Set("title", *req.Title)
	}
	if req.Salary.Set {
		updates = updates.Set("salary", req.Salary.SQLValue())
	}
	if req.Equity.Set {
		updates = updates.Set("equity", req.Equity.SQLValue())
	}
	return updates
}

// validateEquity accepts nil or a decimal string in [0, 1].
func validateEquity(equity *string) error {
	if equity == nil {
		return nil
	}
	v, err := strconv.ParseFloat(*equity, 64)
	if err != nil || v < 0 || v > 1 {
		return fmt.Errorf("%w: %q", jobErrors.ErrInvalidEquity, *equity)
	}
	return nil
}

func mapRepositoryError(err error, ref string) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return fmt.Errorf("%w: %s", jobErrors.ErrJobNotFound, ref)
	case errors.Is(err, repository.ErrDuplicateJob):
		return fmt.Errorf("%w: %s", jobErrors.ErrJobAlreadyExists, ref)
	case errors.Is(err, repository.ErrUnknownCompany):
		return jobErrors.ErrUnknownCompany
	default:
		return err
	}
}
