package sqlbuild

import (
	"strconv"
	"strings"
)

// baseWhere is always true so every predicate can be ANDed on.
const baseWhere = "WHERE 1 = 1"

// Where accumulates ANDed predicates and their parameters.
// A Where is meant for a single query; it is not safe for concurrent use.
type Where struct {
	clause strings.Builder
	values []interface{}
}

// NewWhere returns a builder positioned at `WHERE 1 = 1`.
func NewWhere() *Where {
	w := &Where{values: []interface{}{}}
	w.clause.WriteString(baseWhere)
	return w
}

// And appends ` AND <predicate>`. Each %s in predicate is replaced with the
// placeholder of value, so a value can be referenced more than once. It
// panics if predicate has no %s, since value would be bound to nothing.
//
//	w.And("salary >= %s", 90000)             // AND salary >= $1
//	w.And("(equity IS NULL OR equity = %s)", 0)
func (w *Where) And(predicate string, value interface{}) *Where {
	if !strings.Contains(predicate, "%s") {
		panic("sqlbuild: predicate has no %s placeholder: " + predicate)
	}
	w.values = append(w.values, value)
	placeholder := "$" + strconv.Itoa(len(w.values))

	w.clause.WriteString(" AND ")
	w.clause.WriteString(strings.ReplaceAll(predicate, "%s", placeholder))
	return w
}

// Len returns how many parameters were added.
func (w *Where) Len() int {
	return len(w.values)
}

// Build returns the WHERE clause and a copy of its parameters.
func (w *Where) Build() Fragment {
	values := make([]interface{}, len(w.values))
	copy(values, w.values)
	return Fragment{Clause: w.clause.String(), Values: values}
}

// ContainsPattern lower-cases text and wraps it for a LIKE match.
func ContainsPattern(text string) string {
	return "%" + strings.ToLower(text) + "%"
}
