package database

import (
	"reflect"
	"testing"

	apperrors "github.com/seedstage/careers-api/internal/errors"
)

func TestBuildPartialUpdate_MapsAndDefaults(t *testing.T) {
	clause, args, err := BuildPartialUpdate(
		map[string]any{"a": 1, "b": 2},
		map[string]string{"a": "col_a"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `"col_a"=$1, "b"=$2`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if !reflect.DeepEqual(args, []any{1, 2}) {
		t.Errorf("Expected args [1 2], got %v", args)
	}
}

func TestBuildPartialUpdate_SingleField(t *testing.T) {
	clause, args, err := BuildPartialUpdate(
		map[string]any{"numEmployees": 32},
		map[string]string{"numEmployees": "num_employees", "logoUrl": "logo_url"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `"num_employees"=$1`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if len(args) != 1 || args[0] != 32 {
		t.Errorf("Expected args [32], got %v", args)
	}
}

func TestBuildPartialUpdate_ExplicitNil(t *testing.T) {
	clause, args, err := BuildPartialUpdate(
		map[string]any{"logoUrl": nil, "name": "NewCo"},
		map[string]string{"logoUrl": "logo_url"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `"logo_url"=$1, "name"=$2`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if len(args) != 2 || args[0] != nil || args[1] != "NewCo" {
		t.Errorf("Expected args [<nil> NewCo], got %v", args)
	}
}

func TestBuildPartialUpdate_Empty(t *testing.T) {
	_, _, err := BuildPartialUpdate(map[string]any{}, nil)
	if err == nil {
		t.Fatal("expected error for empty update data")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", apperrors.GetCode(err))
	}
	if err.Error() != "No data" {
		t.Errorf("Expected message %q, got %q", "No data", err.Error())
	}
}

func TestBuildWhere_AllConditions(t *testing.T) {
	conds := []Condition{
		WhereCond("num_employees", GreaterThanOrEqual, 1),
		WhereCond("num_employees", LessThanOrEqual, 2),
		WhereCond("name", ILike, "_2%"),
	}
	clause, args, next := BuildWhere(conds, 1)

	expected := `num_employees >= $1 AND num_employees <= $2 AND name ILIKE $3`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if !reflect.DeepEqual(args, []any{1, 2, "_2%"}) {
		t.Errorf("Expected args [1 2 _2%%], got %v", args)
	}
	if next != 4 {
		t.Errorf("Expected next index 4, got %d", next)
	}
}

func TestBuildWhere_SkippedFiltersLeaveNoGap(t *testing.T) {
	clause, args, next := BuildWhere([]Condition{
		WhereCond("num_employees", LessThanOrEqual, 2),
	}, 1)

	expected := `num_employees <= $1`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if len(args) != 1 || args[0] != 2 {
		t.Errorf("Expected args [2], got %v", args)
	}
	if next != 2 {
		t.Errorf("Expected next index 2, got %d", next)
	}
}

func TestBuildWhere_Empty(t *testing.T) {
	clause, args, next := BuildWhere(nil, 1)
	if clause != "" {
		t.Errorf("Expected empty clause, got %q", clause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
	if next != 1 {
		t.Errorf("Expected next index 1, got %d", next)
	}
}

func TestBuildWhere_RawConditionConsumesNoPlaceholder(t *testing.T) {
	conds := []Condition{
		WhereCond("salary", GreaterThanOrEqual, 50000),
		WhereRaw("equity > 0"),
		WhereCond("title", ILike, "_eng%"),
	}
	clause, args, next := BuildWhere(conds, 1)

	expected := `salary >= $1 AND equity > 0 AND title ILIKE $2`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if !reflect.DeepEqual(args, []any{50000, "_eng%"}) {
		t.Errorf("Expected args [50000 _eng%%], got %v", args)
	}
	if next != 3 {
		t.Errorf("Expected next index 3, got %d", next)
	}
}

func TestBuildWhere_StartIndexContinues(t *testing.T) {
	clause, args, next := BuildWhere([]Condition{
		WhereCond("name", ILike, "_acme%"),
	}, 3)

	expected := `name ILIKE $3`
	if clause != expected {
		t.Errorf("Expected clause %q, got %q", expected, clause)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
	if next != 4 {
		t.Errorf("Expected next index 4, got %d", next)
	}
}
