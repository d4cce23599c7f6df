// Package database assembles parameterized SQL fragments from sparse inputs.
// Both builders are pure: they hold no state and touch no I/O. Placeholders
// are positional ($1, $2, ...) and placeholder $i always binds args[i-1].
package database

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/seedstage/careers-api/internal/errors"
)

// ConditionType is the SQL comparison operator for a Condition.
type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	ILike              ConditionType = "ILIKE"
)

// Condition is one WHERE predicate candidate. Field is a caller-owned column
// reference, never user input; values are always bound via placeholders.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
	raw   string
}

// WhereCond builds a placeholder-bound condition.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRaw builds a literal condition with no bound value (e.g. "equity > 0").
// It does not consume a placeholder slot.
func WhereRaw(fragment string) Condition {
	return Condition{raw: fragment}
}

// BuildWhere folds an ordered condition list into a SQL fragment and its
// positional arguments, numbering placeholders from startIndex. The counter
// advances only for conditions that bind a value, so skipped optional filters
// never leave gaps. The returned clause carries no WHERE keyword; callers
// prefix one only when the clause is non-empty. An empty input yields an
// empty clause, empty args, and an unchanged next index.
func BuildWhere(conds []Condition, startIndex int) (string, []any, int) {
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	next := startIndex

	for _, cond := range conds {
		if cond.raw != "" {
			parts = append(parts, cond.raw)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", cond.Field, cond.Type, next))
		args = append(args, cond.Value)
		next++
	}

	if len(parts) == 0 {
		return "", args, next
	}
	return strings.Join(parts, " AND "), args, next
}

// BuildPartialUpdate turns a sparse field-to-value mapping into a SET clause
// and matching argument list for an UPDATE statement. Fields are visited in
// sorted order so output is deterministic; each resolves to a physical column
// through fieldToColumn, defaulting to the field name itself. Columns render
// quoted ("num_employees"=$1) to survive reserved words and preserve case.
// Explicit nil values pass through and clear the column.
//
// An empty mapping is a validation error: a partial update with nothing to
// set is a caller bug, surfaced as bad request.
func BuildPartialUpdate(data map[string]any, fieldToColumn map[string]string) (string, []any, error) {
	if len(data) == 0 {
		return "", nil, apperrors.Validation("No data")
	}

	fields := make([]string, 0, len(data))
	for field := range data {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for i, field := range fields {
		column, ok := fieldToColumn[field]
		if !ok {
			column = field
		}
		parts = append(parts, fmt.Sprintf("%s=$%d", pgx.Identifier{column}.Sanitize(), i+1))
		args = append(args, data[field])
	}

	return strings.Join(parts, ", "), args, nil
}
