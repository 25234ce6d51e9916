package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jobly/api/internal/database/postgres"
	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/pkg/log"
	"github.com/jobly/api/jobs/models"
)

const jobColumns = `id, title, salary, equity, company_handle`

// updateColumns translates request field names to columns for partial updates.
var updateColumns = sqlbuild.ColumnMap{
	"title":  "title",
	"salary": "salary",
	"equity": "equity",
}

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a job repository backed by Postgres.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) getExecutor() sqlx.ExtContext {
	return r.client.DB()
}

func (r *postgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobColumns

	var created models.Job
	err := sqlx.GetContext(ctx, r.getExecutor(), &created, query, job.Title, job.Salary, job.Equity, job.CompanyHandle)
	if err != nil {
		return nil, translateWriteError(err, "insert job")
	}
	return &created, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, filter *JobFilter) ([]models.Job, error) {
	where := BuildJobFilter(filter)
	query := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY company_handle, id`, jobColumns, where.Clause)
	log.InfoStruct("job filter", where)

	jobs := []models.Job{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(), &jobs, query, where.Values...); err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	return jobs, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int) (*models.JobDetail, error) {
	query := `
		SELECT j.id, j.title, j.salary, j.equity,
			c.handle AS "company.handle",
			c.name AS "company.name",
			c.description AS "company.description",
			c.num_employees AS "company.num_employees",
			c.logo_url AS "company.logo_url"
		FROM jobs j
		JOIN companies c ON c.handle = j.company_handle
		WHERE j.id = $1`

	var job models.JobDetail
	if err := sqlx.GetContext(ctx, r.getExecutor(), &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int, updates sqlbuild.Assignments) (*models.Job, error) {
	set, err := sqlbuild.PartialUpdate(updates, updateColumns)
	if err != nil {
		return nil, err
	}
	log.InfoStruct("job update", set)

	idIdx := len(set.Values) + 1
	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`, set.Clause, idIdx, jobColumns)
	args := append(set.Values, id)

	var job models.Job
	if err := sqlx.GetContext(ctx, r.getExecutor(), &job, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, translateWriteError(err, "update job")
	}
	return &job, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	result, err := r.getExecutor().ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrJobNotFound
	}
	return nil
}

func translateWriteError(err error, op string) error {
	switch {
	case postgres.IsUniqueViolation(err):
		return ErrDuplicateJob
	case postgres.IsForeignKeyViolation(err):
		return ErrUnknownCompany
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
