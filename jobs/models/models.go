package models

import "github.com/jobly/api/internal/types"

// Job is a row of the jobs table. Equity is NUMERIC and travels as a string
// so no precision is lost.
type Job struct {
	ID            int     `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Salary        *int    `json:"salary" db:"salary"`
	Equity        *string `json:"equity" db:"equity"`
	CompanyHandle string  `json:"companyHandle" db:"company_handle"`
}

// JobCompany is the company summary embedded in a job detail.
type JobCompany struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// JobDetail is a job together with its company.
type JobDetail struct {
	ID      int        `json:"id" db:"id"`
	Title   string     `json:"title" db:"title"`
	Salary  *int       `json:"salary" db:"salary"`
	Equity  *string    `json:"equity" db:"equity"`
	Company JobCompany `json:"company" db:"company"`
}

type CreateJobRequest struct {
	Title         string  `json:"title" validate:"required,min=1"`
	Salary        *int    `json:"salary" validate:"omitempty,gte=0"`
	Equity        *string `json:"equity" validate:"omitempty,numeric"`
	CompanyHandle string  `json:"companyHandle" validate:"required,max=25"`
}

// UpdateJobRequest carries a partial update. The id and company of a job
// never change, so they are not accepted here. Salary and equity may be
// cleared with an explicit null.
type UpdateJobRequest struct {
	Title  *string                `json:"title" validate:"omitempty,min=1"`
	Salary types.Nullable[int]    `json:"salary" validate:"omitempty,gte=0"`
	Equity types.Nullable[string] `json:"equity" validate:"omitempty,numeric"`
}

// ListJobsQuery is the query string of GET /jobs.
type ListJobsQuery struct {
	MinSalary *int    `query:"minSalary" validate:"omitempty,gte=0"`
	HasEquity *bool   `query:"hasEquity"`
	Title     *string `query:"title"`
}

type JobsListResponse struct {
	Jobs []Job `json:"jobs"`
}

type JobResponse struct {
	Job interface{} `json:"job"`
}
