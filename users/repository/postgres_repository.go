package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jobly/api/internal/database/postgres"
	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/pkg/log"
	"github.com/jobly/api/users/models"
)

const userColumns = `username, first_name, last_name, email, is_admin`

// updateColumns translates request field names to columns for partial updates.
var updateColumns = sqlbuild.SnakeColumns("firstName", "lastName", "email", "password", "isAdmin")

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a user repository backed by Postgres.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) getExecutor() sqlx.ExtContext {
	return r.client.DB()
}

func (r *postgresRepository) Create(ctx context.Context, user *models.UserRecord) (*models.User, error) {
	query := `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	var created models.User
	err := sqlx.GetContext(ctx, r.getExecutor(), &created, query,
		user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.IsAdmin)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	query := `SELECT ` + userColumns + `, password FROM users WHERE username = $1`

	var user models.UserRecord
	if err := sqlx.GetContext(ctx, r.getExecutor(), &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(), &users, `SELECT `+userColumns+` FROM users ORDER BY username`); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

func (r *postgresRepository) FindAppliedJobs(ctx context.Context, username string) ([]int, error) {
	ids := []int{}
	query := `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`
	if err := sqlx.SelectContext(ctx, r.getExecutor(), &ids, query, username); err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) Update(ctx context.Context, username string, updates sqlbuild.Assignments) (*models.User, error) {
	set, err := sqlbuild.PartialUpdate(updates, updateColumns)
	if err != nil {
		return nil, err
	}
	// never dump the values, they may hold a password hash
	log.Debug("user update: %s", set.Clause)

	usernameIdx := len(set.Values) + 1
	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d RETURNING %s`, set.Clause, usernameIdx, userColumns)
	args := append(set.Values, username)

	var user models.User
	if err := sqlx.GetContext(ctx, r.getExecutor(), &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (r *postgresRepository) Delete(ctx context.Context, username string) error {
	result, err := r.getExecutor().ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Apply(ctx context.Context, username string, jobID int) error {
	query := `
		INSERT INTO applications (username, job_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.getExecutor().ExecContext(ctx, query, username, jobID); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			if strings.Contains(postgres.ViolatedConstraint(err), "job") {
				return ErrJobNotFound
			}
			return ErrUserNotFound
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}
