package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
	"github.com/seedstage/careers-api/internal/mocks"
)

const testCompanyHandle = "acme"

// newCompanyService creates mock repositories and a service for testing.
func newCompanyService(t *testing.T) (*mocks.MockCompanyRepository, *mocks.MockCacheRepository, *CompanyService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	companyRepo := mocks.NewMockCompanyRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)

	service := NewCompanyService(CompanyServiceOptions{
		Companies: companyRepo,
		Cache:     cache,
	})

	return companyRepo, cache, service
}

func testCompany() *model.Company {
	n := 42
	return &model.Company{
		Handle:       testCompanyHandle,
		Name:         "Acme Corp",
		Description:  "Makes anvils",
		NumEmployees: &n,
		CreatedAt:    time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCompanyService_GetByHandle_CacheHit(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()
	company := testCompany()
	raw, err := json.Marshal(company)
	require.NoError(t, err)

	cache.EXPECT().
		Get(ctx, "company:"+testCompanyHandle).
		Return(raw, nil).
		Times(1)

	// The repository must not be touched on a hit.
	companyRepo.EXPECT().GetByHandle(gomock.Any(), gomock.Any()).Times(0)

	result, err := service.GetByHandle(ctx, testCompanyHandle)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_GetByHandle_CacheMiss(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()
	company := testCompany()
	raw, err := json.Marshal(company)
	require.NoError(t, err)

	cache.EXPECT().
		Get(ctx, "company:"+testCompanyHandle).
		Return(nil, nil).
		Times(1)

	companyRepo.EXPECT().
		GetByHandle(ctx, testCompanyHandle).
		Return(company, nil).
		Times(1)

	cache.EXPECT().
		Set(ctx, "company:"+testCompanyHandle, raw, DefaultCompanyCacheTTL).
		Return(nil).
		Times(1)

	result, err := service.GetByHandle(ctx, testCompanyHandle)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_GetByHandle_CacheErrorDegrades(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()
	company := testCompany()

	cache.EXPECT().
		Get(ctx, "company:"+testCompanyHandle).
		Return(nil, errors.New("redis down")).
		Times(1)

	companyRepo.EXPECT().
		GetByHandle(ctx, testCompanyHandle).
		Return(company, nil).
		Times(1)

	// The write failure is swallowed too.
	cache.EXPECT().
		Set(ctx, "company:"+testCompanyHandle, gomock.Any(), DefaultCompanyCacheTTL).
		Return(errors.New("redis down")).
		Times(1)

	result, err := service.GetByHandle(ctx, testCompanyHandle)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_GetByHandle_CorruptEntry(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()
	company := testCompany()

	cache.EXPECT().
		Get(ctx, "company:"+testCompanyHandle).
		Return([]byte("{not json"), nil).
		Times(1)

	// A corrupt entry is dropped before falling through to the repository.
	cache.EXPECT().
		Delete(ctx, "company:"+testCompanyHandle).
		Return(true, nil).
		Times(1)

	companyRepo.EXPECT().
		GetByHandle(ctx, testCompanyHandle).
		Return(company, nil).
		Times(1)

	cache.EXPECT().
		Set(ctx, "company:"+testCompanyHandle, gomock.Any(), DefaultCompanyCacheTTL).
		Return(nil).
		Times(1)

	result, err := service.GetByHandle(ctx, testCompanyHandle)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_GetByHandle_RepoError(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()

	cache.EXPECT().
		Get(ctx, "company:"+testCompanyHandle).
		Return(nil, nil).
		Times(1)

	companyRepo.EXPECT().
		GetByHandle(ctx, testCompanyHandle).
		Return(nil, apperrors.NotFoundf("no company: %s", testCompanyHandle)).
		Times(1)

	result, err := service.GetByHandle(ctx, testCompanyHandle)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, result)
}

func TestCompanyService_Update_InvalidatesCache(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()
	company := testCompany()
	data := map[string]any{"name": "Acme Holdings"}

	companyRepo.EXPECT().
		Update(ctx, testCompanyHandle, data).
		Return(company, nil).
		Times(1)

	cache.EXPECT().
		Delete(ctx, "company:"+testCompanyHandle).
		Return(true, nil).
		Times(1)

	result, err := service.Update(ctx, testCompanyHandle, data)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_Update_RepoError_SkipsInvalidation(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()
	data := map[string]any{"name": "Acme Holdings"}

	companyRepo.EXPECT().
		Update(ctx, testCompanyHandle, data).
		Return(nil, apperrors.NotFoundf("no company: %s", testCompanyHandle)).
		Times(1)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	result, err := service.Update(ctx, testCompanyHandle, data)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestCompanyService_Delete_InvalidatesCache(t *testing.T) {
	t.Parallel()
	companyRepo, cache, service := newCompanyService(t)

	ctx := context.Background()

	companyRepo.EXPECT().
		Delete(ctx, testCompanyHandle).
		Return(nil).
		Times(1)

	cache.EXPECT().
		Delete(ctx, "company:"+testCompanyHandle).
		Return(true, nil).
		Times(1)

	require.NoError(t, service.Delete(ctx, testCompanyHandle))
}

func TestCompanyService_NilCache(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	companyRepo := mocks.NewMockCompanyRepository(ctrl)
	service := NewCompanyService(CompanyServiceOptions{Companies: companyRepo})

	ctx := context.Background()
	company := testCompany()

	companyRepo.EXPECT().
		GetByHandle(ctx, testCompanyHandle).
		Return(company, nil).
		Times(1)

	result, err := service.GetByHandle(ctx, testCompanyHandle)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_Create_Delegates(t *testing.T) {
	t.Parallel()
	companyRepo, _, service := newCompanyService(t)

	ctx := context.Background()
	company := testCompany()
	req := &model.CreateCompanyRequest{Handle: testCompanyHandle, Name: "Acme Corp"}

	companyRepo.EXPECT().
		Create(ctx, req).
		Return(company, nil).
		Times(1)

	result, err := service.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, company, result)
}

func TestCompanyService_List_Delegates(t *testing.T) {
	t.Parallel()
	companyRepo, _, service := newCompanyService(t)

	ctx := context.Background()
	filter := model.CompanyFilter{Name: stringPtr("acme")}
	expected := []*model.Company{testCompany()}

	companyRepo.EXPECT().
		List(ctx, filter).
		Return(expected, nil).
		Times(1)

	result, err := service.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

// Helper functions.
func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }
