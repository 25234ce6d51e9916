package repository

import (
	"github.com/jobly/api/internal/database/sqlbuild"
)

// CompanyFilter holds the optional company search criteria. Nil means absent.
type CompanyFilter struct {
	MinEmployees *int
	MaxEmployees *int
	Name         *string
}

// BuildCompanyFilter renders filter as a WHERE clause. Predicates are always
// emitted in the order minEmployees, maxEmployees, name.
func BuildCompanyFilter(filter *CompanyFilter) sqlbuild.Fragment {
	where := sqlbuild.NewWhere()
	if filter == nil {
		return where.Build()
	}

	if filter.MinEmployees != nil {
		where.And("num_employees >= %s", *filter.MinEmployees)
	}
	if filter.MaxEmployees != nil {
		where.And("num_employees <= %s", *filter.MaxEmployees)
	}
	if filter.Name != nil {
		where.And("LOWER(name) LIKE %s", sqlbuild.ContainsPattern(*filter.Name))
	}

	return where.Build()
}
