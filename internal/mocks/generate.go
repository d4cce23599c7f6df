// Package mocks provides mock implementations for testing the careers API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. The generated files are
// committed; regenerate them after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockCompanyRepository(ctrl)
//	repo.EXPECT().GetByHandle(gomock.Any(), "acme").Return(company, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=company_repository_mock.go github.com/seedstage/careers-api/internal/core CompanyRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/seedstage/careers-api/internal/core JobRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/seedstage/careers-api/internal/core UserRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=application_repository_mock.go github.com/seedstage/careers-api/internal/core ApplicationRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/seedstage/careers-api/internal/core CacheRepository
