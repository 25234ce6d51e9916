package repository

import (
	"github.com/jobly/api/internal/database/sqlbuild"
)

// JobFilter holds the optional job search criteria. Nil means absent.
type JobFilter struct {
	MinSalary *int
	HasEquity *bool
	Title     *string
}

// BuildJobFilter renders filter as a WHERE clause. Predicates are always
// emitted in the order minSalary, hasEquity, title regardless of how the
// filter was populated.
//
// hasEquity=false matches jobs without equity: a NULL or zero value. The
// disjunction is parenthesized so it cannot absorb the neighbouring ANDs.
func BuildJobFilter(filter *JobFilter) sqlbuild.Fragment {
	where := sqlbuild.NewWhere()
	if filter == nil {
		return where.Build()
	}

	if filter.MinSalary != nil {
		where.And("salary >= %s", *filter.MinSalary)
	}
	if filter.HasEquity != nil {
		if *filter.HasEquity {
			where.And("equity > %s", 0)
		} else {
			where.And("(equity IS NULL OR equity = %s)", 0)
		}
	}
	if filter.Title != nil {
		where.And("LOWER(title) LIKE %s", sqlbuild.ContainsPattern(*filter.Title))
	}

	return where.Build()
}
