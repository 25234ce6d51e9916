package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobly/api/companies/models"
	"github.com/jobly/api/internal/database/postgres"
	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/pkg/log"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

// updateColumns translates request field names to columns for partial updates.
var updateColumns = sqlbuild.SnakeColumns("name", "description", "numEmployees", "logoUrl")

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a company repository backed by Postgres.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) getExecutor() sqlx.ExtContext {
	return r.client.DB()
}

func (r *postgresRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	query := `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + companyColumns

	var created models.Company
	err := sqlx.GetContext(ctx, r.getExecutor(), &created, query,
		company.Handle, company.Name, company.Description, company.NumEmployees, company.LogoURL)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrDuplicateCompany
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, filter *CompanyFilter) ([]models.Company, error) {
	where := BuildCompanyFilter(filter)
	query := fmt.Sprintf(`SELECT %s FROM companies %s ORDER BY name`, companyColumns, where.Clause)
	log.InfoStruct("company filter", where)

	companies := []models.Company{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(), &companies, query, where.Values...); err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}
	return companies, nil
}

func (r *postgresRepository) FindByHandle(ctx context.Context, handle string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE handle = $1`

	var company models.Company
	if err := sqlx.GetContext(ctx, r.getExecutor(), &company, query, handle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

func (r *postgresRepository) FindJobs(ctx context.Context, handle string) ([]models.CompanyJob, error) {
	query := `SELECT id, title, salary, equity FROM jobs WHERE company_handle = $1 ORDER BY id`

	jobs := []models.CompanyJob{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(), &jobs, query, handle); err != nil {
		return nil, fmt.Errorf("find company jobs: %w", err)
	}
	return jobs, nil
}

func (r *postgresRepository) Update(ctx context.Context, handle string, updates sqlbuild.Assignments) (*models.Company, error) {
	set, err := sqlbuild.PartialUpdate(updates, updateColumns)
	if err != nil {
		return nil, err
	}
	log.InfoStruct("company update", set)

	handleIdx := len(set.Values) + 1
	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`, set.Clause, handleIdx, companyColumns)
	args := append(set.Values, handle)

	var company models.Company
	if err := sqlx.GetContext(ctx, r.getExecutor(), &company, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		if postgres.IsUniqueViolation(err) {
			return nil, ErrDuplicateCompany
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return &company, nil
}

func (r *postgresRepository) Delete(ctx context.Context, handle string) error {
	result, err := r.getExecutor().ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
