package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const maxJobTitleLen = 255

// Job represents a posting attached to a company.
// Equity is a fixed-point decimal; it is never bound to a float to avoid
// rounding drift in stored values.
type Job struct {
	ID            int64            `json:"id"               db:"id"`
	Title         string           `json:"title"            db:"title"`
	Salary        *int             `json:"salary,omitempty" db:"salary"`
	Equity        *decimal.Decimal `json:"equity,omitempty" db:"equity"`
	CompanyHandle string           `json:"company_handle"   db:"company_handle"`
	CreatedAt     time.Time        `json:"created_at"       db:"created_at"`
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	Title         string           `json:"title"`
	Salary        *int             `json:"salary,omitempty"`
	Equity        *decimal.Decimal `json:"equity,omitempty"`
	CompanyHandle string           `json:"company_handle"`
}

// Validate validates CreateJobRequest.
func (r *CreateJobRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxJobTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.CompanyHandle) == "" {
		return errors.New("company_handle is required")
	}
	if r.Salary != nil && *r.Salary < 0 {
		return errors.New("salary cannot be negative")
	}
	if r.Equity != nil && (r.Equity.IsNegative() || r.Equity.GreaterThan(decimal.NewFromInt(1))) {
		return errors.New("equity must be between 0 and 1")
	}
	return nil
}

// JobFilter holds optional criteria for listing jobs.
// Title matches via ILIKE with a single leading wildcard character; HasEquity
// restricts results to jobs with equity > 0 when true and is ignored otherwise.
type JobFilter struct {
	Title     *string `json:"title,omitempty"`
	MinSalary *int    `json:"min_salary,omitempty"`
	HasEquity *bool   `json:"has_equity,omitempty"`
}

// JobUpdateColumns returns the field-to-column translation table for partial
// job updates. Job fields map one-to-one onto columns, so the table is empty
// and every field passes through.
func JobUpdateColumns() map[string]string {
	return map[string]string{}
}
