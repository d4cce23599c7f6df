package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
	"github.com/seedstage/careers-api/internal/mocks"
)

const testUsername = "jdoe"

func newApplicationService(t *testing.T) (*mocks.MockApplicationRepository, *mocks.MockJobRepository, *ApplicationService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	appRepo := mocks.NewMockApplicationRepository(ctrl)
	jobRepo := mocks.NewMockJobRepository(ctrl)

	service := NewApplicationService(ApplicationServiceOptions{
		Applications: appRepo,
		Jobs:         jobRepo,
	})

	return appRepo, jobRepo, service
}

func testApplication(state model.ApplicationState) *model.Application {
	return &model.Application{
		Username:  testUsername,
		JobID:     testJobID,
		State:     state,
		CreatedAt: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	}
}

func TestApplicationService_Apply_Success(t *testing.T) {
	t.Parallel()
	appRepo, jobRepo, service := newApplicationService(t)

	ctx := context.Background()
	expected := testApplication(model.ApplicationStateApplied)

	jobRepo.EXPECT().
		GetByID(ctx, testJobID).
		Return(testJob(), nil).
		Times(1)

	// State strings normalize before hitting the repository.
	appRepo.EXPECT().
		Apply(ctx, testUsername, testJobID, model.ApplicationStateApplied).
		Return(expected, nil).
		Times(1)

	result, err := service.Apply(ctx, testUsername, testJobID, "  Applied ")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestApplicationService_Apply_InvalidState(t *testing.T) {
	t.Parallel()
	appRepo, jobRepo, service := newApplicationService(t)

	jobRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	appRepo.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := service.Apply(context.Background(), testUsername, testJobID, "maybe")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err), "expected validation, got %v", err)
	assert.Equal(t, "state", apperrors.GetField(err))
	assert.Nil(t, result)
}

func TestApplicationService_Apply_UnknownJob(t *testing.T) {
	t.Parallel()
	appRepo, jobRepo, service := newApplicationService(t)

	ctx := context.Background()

	jobRepo.EXPECT().
		GetByID(ctx, testJobID).
		Return(nil, apperrors.NotFoundf("no job with id: %d", testJobID)).
		Times(1)

	appRepo.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := service.Apply(ctx, testUsername, testJobID, "applied")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "resolve job")
	assert.Nil(t, result)
}

func TestApplicationService_UpdateState(t *testing.T) {
	t.Parallel()
	appRepo, _, service := newApplicationService(t)

	ctx := context.Background()
	expected := testApplication(model.ApplicationStateAccepted)

	appRepo.EXPECT().
		UpdateState(ctx, testUsername, testJobID, model.ApplicationStateAccepted).
		Return(expected, nil).
		Times(1)

	result, err := service.UpdateState(ctx, testUsername, testJobID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, expected, result)

	_, err = service.UpdateState(ctx, testUsername, testJobID, "bogus")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplicationService_ListForUser_Delegates(t *testing.T) {
	t.Parallel()
	appRepo, _, service := newApplicationService(t)

	ctx := context.Background()
	expected := []*model.Application{testApplication(model.ApplicationStateInterested)}

	appRepo.EXPECT().
		ListForUser(ctx, testUsername).
		Return(expected, nil).
		Times(1)

	result, err := service.ListForUser(ctx, testUsername)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestApplicationService_Withdraw_Delegates(t *testing.T) {
	t.Parallel()
	appRepo, _, service := newApplicationService(t)

	ctx := context.Background()

	appRepo.EXPECT().
		Withdraw(ctx, testUsername, testJobID).
		Return(nil).
		Times(1)

	require.NoError(t, service.Withdraw(ctx, testUsername, testJobID))
}
