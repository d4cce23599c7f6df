package testutil

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seedstage/careers-api/internal/domain/model"
)

// UniqueSuffix returns a short random suffix for fixture names so tests can
// share a database without colliding.
func UniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CompanyRequestBuilder provides a fluent interface for building CreateCompanyRequest objects for testing.
type CompanyRequestBuilder struct {
	req *model.CreateCompanyRequest
}

// NewCompanyRequest creates a new CompanyRequestBuilder with sensible defaults
// and a unique handle.
func NewCompanyRequest() *CompanyRequestBuilder {
	suffix := UniqueSuffix()
	return &CompanyRequestBuilder{
		req: &model.CreateCompanyRequest{
			Handle:      "co-" + suffix,
			Name:        "Company " + suffix,
			Description: "A test company",
		},
	}
}

// WithHandle sets the company handle.
func (b *CompanyRequestBuilder) WithHandle(handle string) *CompanyRequestBuilder {
	b.req.Handle = handle
	return b
}

// WithName sets the company name.
func (b *CompanyRequestBuilder) WithName(name string) *CompanyRequestBuilder {
	b.req.Name = name
	return b
}

// WithDescription sets the company description.
func (b *CompanyRequestBuilder) WithDescription(description string) *CompanyRequestBuilder {
	b.req.Description = description
	return b
}

// WithNumEmployees sets the employee count.
func (b *CompanyRequestBuilder) WithNumEmployees(n int) *CompanyRequestBuilder {
	b.req.NumEmployees = &n
	return b
}

// WithLogoURL sets the logo URL.
func (b *CompanyRequestBuilder) WithLogoURL(url string) *CompanyRequestBuilder {
	b.req.LogoURL = &url
	return b
}

// Build returns the built CreateCompanyRequest.
func (b *CompanyRequestBuilder) Build() *model.CreateCompanyRequest {
	return b.req
}

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
// A company handle must be supplied via WithCompanyHandle.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title: "Engineer " + UniqueSuffix(),
		},
	}
}

// WithTitle sets the job title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithSalary sets the salary.
func (b *JobRequestBuilder) WithSalary(salary int) *JobRequestBuilder {
	b.req.Salary = &salary
	return b
}

// WithEquity sets the equity from a decimal string.
func (b *JobRequestBuilder) WithEquity(equity string) *JobRequestBuilder {
	d := decimal.RequireFromString(equity)
	b.req.Equity = &d
	return b
}

// WithCompanyHandle sets the owning company handle.
func (b *JobRequestBuilder) WithCompanyHandle(handle string) *JobRequestBuilder {
	b.req.CompanyHandle = handle
	return b
}

// Build returns the built CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req *model.CreateUserRequest
}

// NewUserRequest creates a new UserRequestBuilder with a unique username.
func NewUserRequest() *UserRequestBuilder {
	suffix := UniqueSuffix()
	return &UserRequestBuilder{
		req: &model.CreateUserRequest{
			Username:  "user-" + suffix,
			FirstName: "Test",
			LastName:  "User",
			Email:     suffix + "@example.com",
		},
	}
}

// WithUsername sets the username.
func (b *UserRequestBuilder) WithUsername(username string) *UserRequestBuilder {
	b.req.Username = username
	return b
}

// WithEmail sets the email.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// Build returns the built CreateUserRequest.
func (b *UserRequestBuilder) Build() *model.CreateUserRequest {
	return b.req
}
