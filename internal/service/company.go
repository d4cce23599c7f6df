// Package service provides the business logic layer for the careers API.
// Services depend on the repository interfaces in internal/core, never on
// concrete repositories, so they can be unit tested against mocks.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/seedstage/careers-api/internal/core"
	"github.com/seedstage/careers-api/internal/domain/model"
)

// DefaultCompanyCacheTTL bounds how stale a cached company read may be.
const DefaultCompanyCacheTTL = 10 * time.Minute

// CompanyServiceOptions groups dependencies for CompanyService.
type CompanyServiceOptions struct {
	Companies core.CompanyRepository
	Cache     core.CacheRepository
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

// CompanyService orchestrates company CRUD with a read-through cache on
// single-company lookups. The cache is optional; with a nil Cache every call
// goes straight to the repository.
type CompanyService struct {
	companies core.CompanyRepository
	cache     core.CacheRepository
	ttl       time.Duration
	logger    *slog.Logger
}

// NewCompanyService constructs a new CompanyService.
func NewCompanyService(opts CompanyServiceOptions) *CompanyService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCompanyCacheTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{
		companies: opts.Companies,
		cache:     opts.Cache,
		ttl:       ttl,
		logger:    logger,
	}
}

// Create creates a company.
func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	return s.companies.Create(ctx, req)
}

// GetByHandle retrieves a company, serving from cache when possible. Cache
// failures degrade to a repository read; they never fail the request.
func (s *CompanyService) GetByHandle(ctx context.Context, handle string) (*model.Company, error) {
	if cached := s.cachedCompany(ctx, handle); cached != nil {
		return cached, nil
	}

	company, err := s.companies.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	s.storeCompany(ctx, company)
	return company, nil
}

// List returns companies matching the filter.
func (s *CompanyService) List(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error) {
	return s.companies.List(ctx, filter)
}

// Update applies a partial update and invalidates the cached entry.
func (s *CompanyService) Update(ctx context.Context, handle string, data map[string]any) (*model.Company, error) {
	company, err := s.companies.Update(ctx, handle, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, handle)
	return company, nil
}

// Delete removes a company and invalidates the cached entry.
func (s *CompanyService) Delete(ctx context.Context, handle string) error {
	if err := s.companies.Delete(ctx, handle); err != nil {
		return err
	}
	s.invalidate(ctx, handle)
	return nil
}

func (s *CompanyService) cachedCompany(ctx context.Context, handle string) *model.Company {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, companyCacheKey(handle))
	if err != nil {
		s.logger.Warn("company cache read failed", "handle", handle, "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var company model.Company
	if err := json.Unmarshal(raw, &company); err != nil {
		s.logger.Warn("company cache entry corrupt", "handle", handle, "error", err)
		s.invalidate(ctx, handle)
		return nil
	}
	return &company
}

func (s *CompanyService) storeCompany(ctx context.Context, company *model.Company) {
	if s.cache == nil || company == nil {
		return
	}
	raw, err := json.Marshal(company)
	if err != nil {
		s.logger.Warn("company cache encode failed", "handle", company.Handle, "error", err)
		return
	}
	if err := s.cache.Set(ctx, companyCacheKey(company.Handle), raw, s.ttl); err != nil {
		s.logger.Warn("company cache write failed", "handle", company.Handle, "error", err)
	}
}

func (s *CompanyService) invalidate(ctx context.Context, handle string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, companyCacheKey(handle)); err != nil {
		s.logger.Warn("company cache invalidation failed", "handle", handle, "error", err)
	}
}

func companyCacheKey(handle string) string { return "company:" + handle }
