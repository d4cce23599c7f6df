//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCompanyHandleLen = 64
	maxCompanyNameLen   = 255
)

// Company represents an employer that posts jobs.
type Company struct {
	Handle       string    `json:"handle"                  db:"handle"`
	Name         string    `json:"name"                    db:"name"`
	Description  string    `json:"description"             db:"description"`
	NumEmployees *int      `json:"num_employees,omitempty" db:"num_employees"`
	LogoURL      *string   `json:"logo_url,omitempty"      db:"logo_url"`
	CreatedAt    time.Time `json:"created_at"              db:"created_at"`
}

// CreateCompanyRequest represents parameters to create a Company.
// Handle is the natural key and is immutable after creation.
type CreateCompanyRequest struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"num_employees,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

// Validate validates CreateCompanyRequest.
func (r *CreateCompanyRequest) Validate() error {
	handle := strings.TrimSpace(r.Handle)
	if handle == "" {
		return errors.New("handle is required and cannot be empty")
	}
	if utf8.RuneCountInString(handle) > maxCompanyHandleLen {
		return fmt.Errorf("handle cannot exceed %d characters", maxCompanyHandleLen)
	}
	if strings.ContainsAny(handle, " \t\n") {
		return errors.New("handle cannot contain whitespace")
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCompanyNameLen {
		return fmt.Errorf("name cannot exceed %d characters", maxCompanyNameLen)
	}
	if r.NumEmployees != nil && *r.NumEmployees < 0 {
		return errors.New("num_employees cannot be negative")
	}
	return nil
}

// CompanyFilter holds optional criteria for listing companies.
// Notes:
// - Name matches via ILIKE with a single leading wildcard character.
// - MinEmployees and MaxEmployees bound num_employees inclusively.
type CompanyFilter struct {
	Name         *string `json:"name,omitempty"`
	MinEmployees *int    `json:"min_employees,omitempty"`
	MaxEmployees *int    `json:"max_employees,omitempty"`
}

// Validate rejects inconsistent employee bounds. Checked before any query runs.
func (f CompanyFilter) Validate() error {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return fmt.Errorf("min employees %d cannot be greater than max employees %d",
			*f.MinEmployees, *f.MaxEmployees)
	}
	return nil
}

// companyUpdateColumns maps logical update field names to physical columns.
// Fields absent from the map pass through unchanged.
var companyUpdateColumns = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyUpdateColumns returns the field-to-column translation table for
// partial company updates.
func CompanyUpdateColumns() map[string]string {
	return companyUpdateColumns
}
