// Package core defines the contracts between the service layer and the data
// layer (ports in hexagonal architecture). Service implementations depend on
// these interfaces, never on concrete repositories.
package core

import (
	"context"
	"time"

	"github.com/seedstage/careers-api/internal/domain/model"
)

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error)
	GetByHandle(ctx context.Context, handle string) (*model.Company, error)
	List(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error)
	// Update applies a sparse field-to-value mapping; absent fields are left
	// untouched and explicit nil values clear nullable columns.
	Update(ctx context.Context, handle string, data map[string]any) (*model.Company, error)
	Delete(ctx context.Context, handle string) error
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	Update(ctx context.Context, id int64, data map[string]any) (*model.Job, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, username string, data map[string]any) (*model.User, error)
	Delete(ctx context.Context, username string) error
}

// ApplicationRepository defines the interface for job application data operations.
type ApplicationRepository interface {
	Apply(ctx context.Context, username string, jobID int64, state model.ApplicationState) (*model.Application, error)
	ListForUser(ctx context.Context, username string) ([]*model.Application, error)
	UpdateState(ctx context.Context, username string, jobID int64, state model.ApplicationState) (*model.Application, error)
	Withdraw(ctx context.Context, username string, jobID int64) error
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	// Set stores a value under key with the given TTL. A zero TTL means the
	// key does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns nil without error when the key
	// does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Returns true when a key was actually removed.
	Delete(ctx context.Context, key string) (bool, error)

	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
