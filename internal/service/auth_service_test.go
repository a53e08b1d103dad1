package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
	"github.com/yourusername/rewardquiz-api/pkg/auth"
)

// ============================================================================
// Моки кеша и SMS-отправителя
// ============================================================================

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) Expire(key string, expiration time.Duration) error {
	args := m.Called(key, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockSMSSender реализует sms.Sender
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) SendCode(ctx context.Context, phoneNumber, code string) error {
	args := m.Called(ctx, phoneNumber, code)
	return args.Error(0)
}

// ============================================================================
// Вспомогательные функции
// ============================================================================

func newAuthService(t *testing.T) (*AuthService, *MockUserRepository, *MockCacheRepository, *MockSMSSender) {
	t.Helper()
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	sender := new(MockSMSSender)
	jwtService, err := auth.NewJWTService("test-secret-key", 24)
	require.NoError(t, err)

	svc, err := NewAuthService(userRepo, cacheRepo, sender, jwtService, 5*time.Minute, 3, time.Minute)
	require.NoError(t, err)
	return svc, userRepo, cacheRepo, sender
}

func hashedCode(t *testing.T, code string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// stubChallenge подкладывает challenge в мок GetJSON
func stubChallenge(cacheRepo *MockCacheRepository, challengeID string, challenge phoneChallenge) {
	cacheRepo.On("GetJSON", challengeKeyPrefix+challengeID, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*phoneChallenge)
			*dest = challenge
		}).
		Return(nil)
}

// ============================================================================
// RequestCode
// ============================================================================

func TestAuthService_RequestCode_Success(t *testing.T) {
	svc, _, cacheRepo, sender := newAuthService(t)

	var sentCode string
	cacheRepo.On("Get", resendKeyPrefix+"+4915112345678").Return("", apperrors.ErrNotFound)
	cacheRepo.On("SetJSON", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, challengeKeyPrefix)
	}), mock.Anything, 5*time.Minute).Return(nil)
	cacheRepo.On("Set", resendKeyPrefix+"+4915112345678", "1", time.Minute).Return(nil)
	sender.On("SendCode", mock.Anything, "+4915112345678", mock.Anything).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).
		Return(nil)

	challengeID, err := svc.RequestCode(context.Background(), "+49 151 1234-5678")

	require.NoError(t, err)
	assert.NotEmpty(t, challengeID)
	assert.Len(t, sentCode, 6)
	cacheRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestAuthService_RequestCode_InvalidPhoneNumber(t *testing.T) {
	svc, _, cacheRepo, sender := newAuthService(t)

	for _, phone := range []string{"", "12345", "+0123456789", "+49abc123456", "+123"} {
		_, err := svc.RequestCode(context.Background(), phone)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPhoneNumber, "phone %q", phone)
	}
	cacheRepo.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "SendCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RequestCode_ResendCooldown(t *testing.T) {
	svc, _, cacheRepo, sender := newAuthService(t)

	// Ключ повторной отправки ещё жив
	cacheRepo.On("Get", resendKeyPrefix+"+4915112345678").Return("1", nil)

	_, err := svc.RequestCode(context.Background(), "+4915112345678")

	assert.ErrorIs(t, err, apperrors.ErrTooManyRequests)
	sender.AssertNotCalled(t, "SendCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RequestCode_SendFailureCleansChallenge(t *testing.T) {
	svc, _, cacheRepo, sender := newAuthService(t)

	cacheRepo.On("Get", mock.Anything).Return("", apperrors.ErrNotFound)
	cacheRepo.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("Delete", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, challengeKeyPrefix)
	})).Return(nil)
	sender.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.RequestCode(context.Background(), "+4915112345678")

	require.Error(t, err)
	cacheRepo.AssertExpectations(t)
}

// ============================================================================
// ConfirmCode
// ============================================================================

func TestAuthService_ConfirmCode_CreatesUserOnFirstLogin(t *testing.T) {
	svc, userRepo, cacheRepo, _ := newAuthService(t)

	stubChallenge(cacheRepo, "ch-1", phoneChallenge{
		PhoneNumber: "+4915112345678",
		CodeHash:    hashedCode(t, "123456"),
		CreatedAt:   time.Now(),
	})
	cacheRepo.On("Delete", challengeKeyPrefix+"ch-1").Return(nil)
	userRepo.On("GetByPhone", "+4915112345678").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, token, err := svc.ConfirmCode(context.Background(), "ch-1", "123456")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "+4915112345678", user.PhoneNumber)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ConfirmCode_ReturnsExistingUser(t *testing.T) {
	svc, userRepo, cacheRepo, _ := newAuthService(t)

	existing := &entity.User{ID: "u1", PhoneNumber: "+4915112345678", IsAdmin: true}
	stubChallenge(cacheRepo, "ch-1", phoneChallenge{
		PhoneNumber: "+4915112345678",
		CodeHash:    hashedCode(t, "123456"),
	})
	cacheRepo.On("Delete", challengeKeyPrefix+"ch-1").Return(nil)
	userRepo.On("GetByPhone", "+4915112345678").Return(existing, nil)

	user, token, err := svc.ConfirmCode(context.Background(), "ch-1", "123456")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_ConfirmCode_WrongCodeIncrementsAttempts(t *testing.T) {
	svc, userRepo, cacheRepo, _ := newAuthService(t)

	stubChallenge(cacheRepo, "ch-1", phoneChallenge{
		PhoneNumber: "+4915112345678",
		CodeHash:    hashedCode(t, "123456"),
		Attempts:    1,
	})
	cacheRepo.On("SetJSON", challengeKeyPrefix+"ch-1", mock.MatchedBy(func(ch phoneChallenge) bool {
		return ch.Attempts == 2
	}), 5*time.Minute).Return(nil)

	_, _, err := svc.ConfirmCode(context.Background(), "ch-1", "654321")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
	cacheRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "GetByPhone", mock.Anything)
}

func TestAuthService_ConfirmCode_AttemptsExhausted(t *testing.T) {
	svc, _, cacheRepo, _ := newAuthService(t)

	stubChallenge(cacheRepo, "ch-1", phoneChallenge{
		PhoneNumber: "+4915112345678",
		CodeHash:    hashedCode(t, "123456"),
		Attempts:    3,
	})
	cacheRepo.On("Delete", challengeKeyPrefix+"ch-1").Return(nil)

	// Даже правильный код больше не принимается
	_, _, err := svc.ConfirmCode(context.Background(), "ch-1", "123456")

	assert.ErrorIs(t, err, apperrors.ErrTooManyRequests)
	cacheRepo.AssertCalled(t, "Delete", challengeKeyPrefix+"ch-1")
}

func TestAuthService_ConfirmCode_ExpiredChallenge(t *testing.T) {
	svc, _, cacheRepo, _ := newAuthService(t)

	cacheRepo.On("GetJSON", challengeKeyPrefix+"expired", mock.Anything).
		Return(apperrors.ErrNotFound)

	_, _, err := svc.ConfirmCode(context.Background(), "expired", "123456")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
}

func TestAuthService_ConfirmCode_CreateRaceFallsBackToExisting(t *testing.T) {
	svc, userRepo, cacheRepo, _ := newAuthService(t)

	existing := &entity.User{ID: "u1", PhoneNumber: "+4915112345678"}
	stubChallenge(cacheRepo, "ch-1", phoneChallenge{
		PhoneNumber: "+4915112345678",
		CodeHash:    hashedCode(t, "123456"),
	})
	cacheRepo.On("Delete", challengeKeyPrefix+"ch-1").Return(nil)
	userRepo.On("GetByPhone", "+4915112345678").Return(nil, apperrors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)
	userRepo.On("GetByPhone", "+4915112345678").Return(existing, nil)

	user, _, err := svc.ConfirmCode(context.Background(), "ch-1", "123456")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

// ============================================================================
// normalizePhoneNumber
// ============================================================================

func TestNormalizePhoneNumber(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"+49 151 1234 5678", "+4915112345678"},
		{"+49-151-1234-5678", "+4915112345678"},
		{"  +49 (151) 12345678  ", "+4915112345678"},
		{"+4915112345678", "+4915112345678"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, normalizePhoneNumber(tc.input))
	}
}
