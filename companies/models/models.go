package models

import "github.com/jobly/api/internal/types"

// Company is a row of the companies table.
type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// CompanyJob is the job summary embedded in a company detail.
type CompanyJob struct {
	ID     int     `json:"id" db:"id"`
	Title  string  `json:"title" db:"title"`
	Salary *int    `json:"salary" db:"salary"`
	Equity *string `json:"equity" db:"equity"`
}

// CompanyDetail is a company with its jobs.
type CompanyDetail struct {
	Company
	Jobs []CompanyJob `json:"jobs"`
}

type CreateCompanyRequest struct {
	Handle       string  `json:"handle" validate:"required,lowercase,max=25"`
	Name         string  `json:"name" validate:"required,min=1"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,gte=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// UpdateCompanyRequest carries a partial update. Absent fields are left
// alone; numEmployees and logoUrl may be cleared with an explicit null.
type UpdateCompanyRequest struct {
	Name         *string                `json:"name" validate:"omitempty,min=1"`
	Description  *string                `json:"description"`
	NumEmployees types.Nullable[int]    `json:"numEmployees" validate:"omitempty,gte=0"`
	LogoURL      types.Nullable[string] `json:"logoUrl" validate:"omitempty,url"`
}

// ListCompaniesQuery is the query string of GET /companies.
type ListCompaniesQuery struct {
	MinEmployees *int    `query:"minEmployees" validate:"omitempty,gte=0"`
	MaxEmployees *int    `query:"maxEmployees" validate:"omitempty,gte=0"`
	Name         *string `query:"name"`
}

type CompaniesListResponse struct {
	Companies []Company `json:"companies"`
}

type CompanyResponse struct {
	Company interface{} `json:"company"`
}
