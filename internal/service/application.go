package service

import (
	"context"
	"fmt"

	"github.com/seedstage/careers-api/internal/core"
	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Applications core.ApplicationRepository
	Jobs         core.JobRepository
}

// ApplicationService orchestrates the user-to-job application workflow.
type ApplicationService struct {
	applications core.ApplicationRepository
	jobs         core.JobRepository
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	return &ApplicationService{applications: opts.Applications, jobs: opts.Jobs}
}

// Apply records an application after normalizing the state string. The job is
// resolved first so a stale job ID reads as not-found rather than a
// constraint failure.
func (s *ApplicationService) Apply(ctx context.Context, username string, jobID int64, state string) (*model.Application, error) {
	parsed, ok := model.ParseApplicationState(state)
	if !ok {
		return nil, apperrors.ValidationField("state", fmt.Sprintf("unknown application state: %q", state))
	}
	if s.jobs != nil {
		if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
			return nil, fmt.Errorf("resolve job: %w", err)
		}
	}
	return s.applications.Apply(ctx, username, jobID, parsed)
}

// ListForUser returns a user's applications, most recent first.
func (s *ApplicationService) ListForUser(ctx context.Context, username string) ([]*model.Application, error) {
	return s.applications.ListForUser(ctx, username)
}

// UpdateState moves an application to a new state.
func (s *ApplicationService) UpdateState(ctx context.Context, username string, jobID int64, state string) (*model.Application, error) {
	parsed, ok := model.ParseApplicationState(state)
	if !ok {
		return nil, apperrors.ValidationField("state", fmt.Sprintf("unknown application state: %q", state))
	}
	return s.applications.UpdateState(ctx, username, jobID, parsed)
}

// Withdraw removes an application.
func (s *ApplicationService) Withdraw(ctx context.Context, username string, jobID int64) error {
	return s.applications.Withdraw(ctx, username, jobID)
}
