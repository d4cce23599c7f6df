package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "company not found",
			},
			want: "company not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"not found", NotFound("job not found"), ErrCodeNotFound, "job not found"},
		{"not found formatted", NotFoundf("no job with id: %d", 42), ErrCodeNotFound, "no job with id: 42"},
		{"conflict", Conflict("duplicate company"), ErrCodeConflict, "duplicate company"},
		{"conflict formatted", Conflictf("duplicate company: %s", "acme"), ErrCodeConflict, "duplicate company: acme"},
		{"validation", Validation("No data"), ErrCodeValidation, "No data"},
		{"validation formatted", Validationf("min employees %d cannot exceed max %d", 11, 2), ErrCodeValidation, "min employees 11 cannot exceed max 2"},
		{"internal", Internal("boom"), ErrCodeInternal, "boom"},
		{"foreign key", ForeignKey("company in use"), ErrCodeForeignKey, "company in use"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("handle", "handle is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "handle" {
		t.Errorf("Field = %q, want %q", err.Field, "handle")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, ErrCodeInternal, "query companies")
	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}

	if Wrap(nil, ErrCodeInternal, "noop") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrapf(cause, ErrCodeTimeout, "get company %q", "acme")
	if err.Message != `get company "acme"` {
		t.Errorf("Message = %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"IsNotFound on NotFound", NotFound("x"), IsNotFound, true},
		{"IsNotFound on Conflict", Conflict("x"), IsNotFound, false},
		{"IsConflict on Conflict", Conflict("x"), IsConflict, true},
		{"IsValidation on Validation", Validation("x"), IsValidation, true},
		{"IsForeignKey on ForeignKey", ForeignKey("x"), IsForeignKey, true},
		{"IsInternal on Internal", Internal("x"), IsInternal, true},
		{"IsNotFound on plain error", errors.New("x"), IsNotFound, false},
		{"IsNotFound on nil", nil, IsNotFound, false},
		{"IsNotFound through wrapping", fmt.Errorf("outer: %w", NotFound("x")), IsNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndField(t *testing.T) {
	if got := GetCode(ValidationField("salary", "bad")); got != ErrCodeValidation {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeValidation)
	}
	if got := GetField(ValidationField("salary", "bad")); got != "salary" {
		t.Errorf("GetField() = %q, want %q", got, "salary")
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField(plain) = %q, want empty", got)
	}
}
