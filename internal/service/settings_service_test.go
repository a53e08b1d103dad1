package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

func TestSettingsService_Get_FallsBackToDefault(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	settingsRepo.On("Get").Return(nil, apperrors.ErrNotFound)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, entity.CooldownPerMinute, settings.CooldownPolicy)
}

func TestSettingsService_UpdateCooldownPolicy(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	settingsRepo.On("UpdatePolicy", entity.CooldownUntilMidnight).Return(nil)

	require.NoError(t, svc.UpdateCooldownPolicy(entity.CooldownUntilMidnight))
	settingsRepo.AssertExpectations(t)
}

func TestSettingsService_UpdateCooldownPolicy_RejectsUnknown(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	err := svc.UpdateCooldownPolicy("weekly")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	settingsRepo.AssertNotCalled(t, "UpdatePolicy", mock.Anything)
}

func TestUserService_PromoteByPhone(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("GetByPhone", "+4915112345678").Return(&entity.User{ID: "u1", PhoneNumber: "+4915112345678"}, nil)
	userRepo.On("SetAdmin", "u1", true).Return(nil)

	user, err := svc.PromoteByPhone("+4915112345678")

	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestUserService_PromoteByPhone_AlreadyAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("GetByPhone", "+4915112345678").Return(&entity.User{ID: "u1", IsAdmin: true}, nil)

	user, err := svc.PromoteByPhone("+4915112345678")

	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	userRepo.AssertNotCalled(t, "SetAdmin", mock.Anything, mock.Anything)
}
