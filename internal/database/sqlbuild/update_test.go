package sqlbuild

import (
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func placeholderIndexes(t *testing.T, clause string) []int {
	t.Helper()
	var out []int
	for _, m := range placeholderRe.FindAllStringSubmatch(clause, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		out = append(out, n)
	}
	return out
}

func TestPartialUpdate(t *testing.T) {
	columns := ColumnMap{
		"firstName": "first_name",
		"lastName":  "last_name",
		"isAdmin":   "is_admin",
	}

	t.Run("returns quoted columns and positional values", func(t *testing.T) {
		updates := Assignments{}.
			Set("firstName", "Ben").
			Set("email", "testing@gmail.com")

		frag, err := PartialUpdate(updates, columns)

		require.NoError(t, err)
		require.Equal(t, `"first_name"=$1, "email"=$2`, frag.Clause)
		require.Equal(t, []interface{}{"Ben", "testing@gmail.com"}, frag.Values)
	})

	t.Run("falls back to the field name when unmapped", func(t *testing.T) {
		frag, err := PartialUpdate(Assignments{{Field: "salary", Value: 1000}}, columns)

		require.NoError(t, err)
		require.Equal(t, `"salary"=$1`, frag.Clause)
	})

	t.Run("nil table behaves like an empty table", func(t *testing.T) {
		frag, err := PartialUpdate(Assignments{{Field: "title", Value: "x"}}, nil)

		require.NoError(t, err)
		require.Equal(t, `"title"=$1`, frag.Clause)
	})

	t.Run("passes nil values through", func(t *testing.T) {
		updates := Assignments{}.Set("equity", nil).Set("title", "Dev")

		frag, err := PartialUpdate(updates, nil)

		require.NoError(t, err)
		require.Equal(t, `"equity"=$1, "title"=$2`, frag.Clause)
		require.Equal(t, []interface{}{nil, "Dev"}, frag.Values)
	})

	t.Run("rejects empty updates", func(t *testing.T) {
		frag, err := PartialUpdate(Assignments{}, columns)

		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNoData))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, "no data", verr.Message)
		require.Empty(t, frag.Clause)
		require.Nil(t, frag.Values)

		_, err = PartialUpdate(nil, columns)
		require.ErrorIs(t, err, ErrNoData)
	})

	t.Run("honours a start index", func(t *testing.T) {
		updates := Assignments{}.Set("title", "Dev").Set("salary", 10)

		frag, err := PartialUpdateAt(updates, nil, 3)

		require.NoError(t, err)
		require.Equal(t, `"title"=$3, "salary"=$4`, frag.Clause)
	})

	t.Run("start index below 1 panics", func(t *testing.T) {
		updates := Assignments{}.Set("title", "Dev")
		require.Panics(t, func() { _, _ = PartialUpdateAt(updates, nil, 0) })
		require.Panics(t, func() { _, _ = PartialUpdateAt(nil, nil, -1) })
	})

	t.Run("is idempotent", func(t *testing.T) {
		updates := Assignments{}.Set("firstName", "A").Set("lastName", "B").Set("isAdmin", true)

		first, err := PartialUpdate(updates, columns)
		require.NoError(t, err)
		second, err := PartialUpdate(updates, columns)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})
}

func TestPartialUpdate_PlaceholderInvariant(t *testing.T) {
	fields := []string{"a", "bField", "c", "dField", "e", "f", "g"}

	for size := 1; size <= len(fields); size++ {
		updates := Assignments{}
		for i := 0; i < size; i++ {
			updates = updates.Set(fields[i], i)
		}

		frag, err := PartialUpdate(updates, SnakeColumns(fields...))
		require.NoError(t, err)

		idx := placeholderIndexes(t, frag.Clause)
		require.Len(t, idx, len(frag.Values))
		for i, n := range idx {
			require.Equal(t, i+1, n, "placeholders must be consecutive from 1")
			require.Equal(t, i, frag.Values[i], "value order must follow field order")
		}
	}
}

func TestAssignments(t *testing.T) {
	t.Run("Set replaces an existing field in place", func(t *testing.T) {
		a := Assignments{}.Set("title", "one").Set("salary", 1).Set("title", "two")

		require.Equal(t, []string{"title", "salary"}, a.Fields())
		require.Equal(t, "two", a[0].Value)
	})

	t.Run("FromMap sorts keys", func(t *testing.T) {
		a := AssignmentsFromMap(map[string]interface{}{"salary": 1, "equity": "0.1", "title": "x"})

		require.Equal(t, []string{"equity", "salary", "title"}, a.Fields())
	})
}

func TestSnakeColumns(t *testing.T) {
	cols := SnakeColumns("numEmployees", "logoUrl", "name")

	require.Equal(t, "num_employees", cols.Column("numEmployees"))
	require.Equal(t, "logo_url", cols.Column("logoUrl"))
	require.Equal(t, "name", cols.Column("name"))
	require.Equal(t, "missing", cols.Column("missing"))
}
