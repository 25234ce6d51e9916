package postgres

import (
	"context"
	"fmt"
)

// Schema creates the tables used by the service. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS companies (
	handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
	name TEXT UNIQUE NOT NULL,
	num_employees INTEGER CHECK (num_employees >= 0),
	description TEXT NOT NULL,
	logo_url TEXT
);

CREATE TABLE IF NOT EXISTS jobs (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	salary INTEGER CHECK (salary >= 0),
	equity NUMERIC CHECK (equity <= 1.0),
	company_handle VARCHAR(25) NOT NULL REFERENCES companies ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
	username VARCHAR(25) PRIMARY KEY,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL CHECK (position('@' IN email) > 1),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS applications (
	username VARCHAR(25) REFERENCES users ON DELETE CASCADE,
	job_id INTEGER REFERENCES jobs ON DELETE CASCADE,
	state TEXT NOT NULL DEFAULT 'applied',
	PRIMARY KEY (username, job_id)
);

CREATE INDEX IF NOT EXISTS idx_jobs_company_handle ON jobs(company_handle);
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_company_title ON jobs(company_handle, title);
`

// ApplySchema executes Schema against the client's database.
func ApplySchema(ctx context.Context, client *Client) error {
	if _, err := client.DB().ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
