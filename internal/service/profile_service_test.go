package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "saaskit/internal/errors"
	"saaskit/internal/model"
)

type MockCMSClient struct {
	mock.Mock
}

func (m *MockCMSClient) FetchProfile(ctx context.Context, clerkID string) (*model.Profile, error) {
	args := m.Called(ctx, clerkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockCMSClient) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockCMSClient) UpdateProfile(ctx context.Context, id int, update model.ProfileUpdate) (*model.Profile, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockCMSClient) CreateProfile(ctx context.Context, profile model.NewProfile) (*model.Profile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockCMSClient) DeleteProfile(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func strPtr(s string) *string { return &s }

func TestProfileService_GetProfile(t *testing.T) {
	client := new(MockCMSClient)
	svc := NewProfileService(client, nil, 0)
	want := &model.Profile{ID: 3, ClerkID: "user_1", Email: "a@example.com"}
	client.On("FetchProfile", mock.Anything, "user_1").Return(want, nil)

	got, err := svc.GetProfile(context.Background(), "user_1")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	client.AssertExpectations(t)
}

func TestProfileService_GetProfileNotFound(t *testing.T) {
	client := new(MockCMSClient)
	svc := NewProfileService(client, nil, 0)
	client.On("FetchProfile", mock.Anything, "user_1").Return(nil, apperrors.ErrProfileNotFound)

	_, err := svc.GetProfile(context.Background(), "user_1")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	client := new(MockCMSClient)
	svc := NewProfileService(client, nil, 0)
	update := model.ProfileUpdate{Bio: strPtr("hello")}

	client.On("FetchProfile", mock.Anything, "user_1").Return(&model.Profile{ID: 3, ClerkID: "user_1"}, nil)
	client.On("UpdateProfile", mock.Anything, 3, update).Return(&model.Profile{ID: 3, ClerkID: "user_1", Bio: "hello"}, nil)

	got, err := svc.UpdateProfile(context.Background(), "user_1", update)

	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)
	client.AssertExpectations(t)
}

func TestProfileService_UpdateProfileEmpty(t *testing.T) {
	client := new(MockCMSClient)
	svc := NewProfileService(client, nil, 0)
	current := &model.Profile{ID: 3, ClerkID: "user_1"}
	client.On("FetchProfile", mock.Anything, "user_1").Return(current, nil)

	got, err := svc.UpdateProfile(context.Background(), "user_1", model.ProfileUpdate{})

	require.NoError(t, err)
	assert.Equal(t, current, got)
	client.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfileCMSFailure(t *testing.T) {
	client := new(MockCMSClient)
	svc := NewProfileService(client, nil, 0)
	update := model.ProfileUpdate{Locale: strPtr("da")}

	client.On("FetchProfile", mock.Anything, "user_1").Return(&model.Profile{ID: 3}, nil)
	client.On("UpdateProfile", mock.Anything, 3, update).Return(nil, errors.New("cms down"))

	_, err := svc.UpdateProfile(context.Background(), "user_1", update)
	assert.EqualError(t, err, "cms down")
}
