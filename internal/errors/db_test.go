package errors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{"deadline exceeded", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if GetCode(err) != tt.wantCode {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "column name metadata",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "companies_pkey",
				ColumnName:     "handle",
			},
			wantField: "handle",
		},
		{
			name: "detail message parsing",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "companies_name_key",
				Detail:         `Key (name)=(Acme Widgets) already exists.`,
			},
			wantField: "name",
		},
		{
			name: "constraint name inference",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			},
			wantField: "email",
		},
		{
			name: "ambiguous multi-column constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "applications_username_job_id_key",
			},
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Fatalf("MapDBError() should be Conflict, got %v", GetCode(err))
			}
			if got := GetField(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name        string
		pgErr       *pgconn.PgError
		wantMsgPart string
	}{
		{
			name: "delete referenced company",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.ForeignKeyViolation,
				Detail: `Key (handle)=(acme) is still referenced from table "jobs".`,
			},
			wantMsgPart: "in use by Job",
		},
		{
			name: "insert job with missing company",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.ForeignKeyViolation,
				Detail: `Key (company_handle)=(nope) is not present in table "companies".`,
			},
			wantMsgPart: "referenced Company does not exist",
		},
		{
			name: "fallback to table name",
			pgErr: &pgconn.PgError{
				Code:      pgerrcode.ForeignKeyViolation,
				TableName: "applications",
			},
			wantMsgPart: "in use by Application",
		},
		{
			name:        "no metadata at all",
			pgErr:       &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			wantMsgPart: "in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsForeignKey(err) {
				t.Fatalf("MapDBError() should be ForeignKey, got %v", GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsgPart) {
				t.Errorf("message %q should contain %q", err.Error(), tt.wantMsgPart)
			}
		})
	}
}

func TestMapDBError_CheckAndNotNullViolations(t *testing.T) {
	checkErr := MapDBError(&pgconn.PgError{
		Code:       pgerrcode.CheckViolation,
		ColumnName: "num_employees",
	})
	if !IsValidation(checkErr) {
		t.Errorf("check violation should be Validation, got %v", GetCode(checkErr))
	}
	if GetField(checkErr) != "num_employees" {
		t.Errorf("field = %q, want num_employees", GetField(checkErr))
	}

	notNullErr := MapDBError(&pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "title",
	})
	if !IsValidation(notNullErr) {
		t.Errorf("not-null violation should be Validation, got %v", GetCode(notNullErr))
	}
	if GetField(notNullErr) != "title" {
		t.Errorf("field = %q, want title", GetField(notNullErr))
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.AdminShutdown})
	if !IsInternal(err) {
		t.Errorf("unknown pg error should map to Internal, got %v", GetCode(err))
	}
}

func TestMapDBError_PassThrough(t *testing.T) {
	plain := errors.New("network unreachable")
	if got := MapDBError(plain); !errors.Is(got, plain) {
		t.Errorf("unrecognized errors should pass through, got %v", got)
	}
}

func TestTableToDomain_Fallback(t *testing.T) {
	if got := tableToDomain("saved_searches"); got != "Saved Searches" {
		t.Errorf("tableToDomain fallback = %q", got)
	}
}
