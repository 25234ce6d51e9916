// Package sqlbuild turns sparse updates and optional filters into
// parameterized Postgres fragments. Everything here is pure: no I/O, no
// shared state, one fresh Fragment per call.
package sqlbuild

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// ValidationError reports bad caller input, as opposed to a system fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrNoData is returned when a partial update carries no fields.
var ErrNoData = &ValidationError{Message: "no data"}

// Fragment is a piece of SQL plus its positional parameters.
// The number of $n placeholders in Clause always equals len(Values).
type Fragment struct {
	Clause string
	Values []interface{}
}

// Assignment is one field of a partial update.
type Assignment struct {
	Field string
	Value interface{}
}

// Assignments is an ordered field -> value list. Order is insertion order.
type Assignments []Assignment

// Set appends the field, or replaces its value when already present.
func (a Assignments) Set(field string, value interface{}) Assignments {
	for i := range a {
		if a[i].Field == field {
			a[i].Value = value
			return a
		}
	}
	return append(a, Assignment{Field: field, Value: value})
}

// Fields returns the field names in order.
func (a Assignments) Fields() []string {
	names := make([]string, len(a))
	for i, as := range a {
		names[i] = as.Field
	}
	return names
}

// AssignmentsFromMap builds Assignments from an unordered map. Keys are sorted
// so the resulting clause is deterministic.
func AssignmentsFromMap(m map[string]interface{}) Assignments {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Assignments, 0, len(keys))
	for _, k := range keys {
		out = append(out, Assignment{Field: k, Value: m[k]})
	}
	return out
}

// ColumnMap translates logical field names to column names.
type ColumnMap map[string]string

// Column returns the mapped column, or the field itself when unmapped.
func (m ColumnMap) Column(field string) string {
	if col, ok := m[field]; ok && col != "" {
		return col
	}
	return field
}

// SnakeColumns maps each camelCase field to its snake_case column.
func SnakeColumns(fields ...string) ColumnMap {
	m := make(ColumnMap, len(fields))
	for _, f := range fields {
		m[f] = strcase.ToSnake(f)
	}
	return m
}

// PartialUpdate builds the SET list for an UPDATE with placeholders starting at $1.
//
//	{firstName: "Aliya", age: 32} => `"first_name"=$1, "age"=$2`, ["Aliya", 32]
//
// Column names are quoted but not validated; they must come from code, never
// from request input.
func PartialUpdate(updates Assignments, columns ColumnMap) (Fragment, error) {
	return PartialUpdateAt(updates, columns, 1)
}

// PartialUpdateAt is PartialUpdate with placeholders starting at startIndex.
// It panics if startIndex is below 1.
func PartialUpdateAt(updates Assignments, columns ColumnMap, startIndex int) (Fragment, error) {
	if startIndex < 1 {
		panic(fmt.Sprintf("sqlbuild: placeholder index %d is below 1", startIndex))
	}
	if len(updates) == 0 {
		return Fragment{}, ErrNoData
	}

	cols := make([]string, len(updates))
	values := make([]interface{}, len(updates))
	for i, u := range updates {
		cols[i] = fmt.Sprintf(`"%s"=$%d`, columns.Column(u.Field), startIndex+i)
		values[i] = u.Value
	}

	return Fragment{
		Clause: strings.Join(cols, ", "),
		Values: values,
	}, nil
}
