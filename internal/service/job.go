package service

import (
	"context"
	"fmt"

	"github.com/seedstage/careers-api/internal/core"
	"github.com/seedstage/careers-api/internal/domain/model"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Jobs      core.JobRepository
	Companies core.CompanyRepository
}

// JobService orchestrates job posting CRUD.
type JobService struct {
	jobs      core.JobRepository
	companies core.CompanyRepository
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	return &JobService{jobs: opts.Jobs, companies: opts.Companies}
}

// Create creates a job posting. The company is resolved first so a bad handle
// surfaces as a not-found on the company rather than a constraint failure on
// the insert.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if s.companies != nil {
		if _, err := s.companies.GetByHandle(ctx, req.CompanyHandle); err != nil {
			return nil, fmt.Errorf("resolve company: %w", err)
		}
	}
	return s.jobs.Create(ctx, req)
}

// GetByID retrieves a job by ID.
func (s *JobService) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// List returns jobs matching the filter.
func (s *JobService) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	return s.jobs.List(ctx, filter)
}

// Update applies a partial update to a job.
func (s *JobService) Update(ctx context.Context, id int64, data map[string]any) (*model.Job, error) {
	return s.jobs.Update(ctx, id, data)
}

// Delete removes a job.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	return s.jobs.Delete(ctx, id)
}
