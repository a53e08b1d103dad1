package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
	"github.com/yourusername/rewardquiz-api/pkg/auth"
	"github.com/yourusername/rewardquiz-api/pkg/sms"
)

// Номер принимается в формате E.164: плюс и 7-15 цифр
var phoneNumberPattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

const (
	challengeKeyPrefix = "otp:challenge:"
	resendKeyPrefix    = "otp:resend:"
)

// phoneChallenge - запись одного запроса кода, хранится в Redis с TTL.
// Сам код не сохраняется, только bcrypt-хеш.
type phoneChallenge struct {
	PhoneNumber string    `json:"phone_number"`
	CodeHash    string    `json:"code_hash"`
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthService реализует вход по номеру телефона с одноразовым кодом
type AuthService struct {
	userRepo       repository.UserRepository
	cacheRepo      repository.CacheRepository
	sender         sms.Sender
	jwtService     *auth.JWTService
	codeTTL        time.Duration
	maxAttempts    int
	resendCooldown time.Duration
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	sender sms.Sender,
	jwtService *auth.JWTService,
	codeTTL time.Duration,
	maxAttempts int,
	resendCooldown time.Duration,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if cacheRepo == nil {
		return nil, fmt.Errorf("cache repository is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("sms sender is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	if codeTTL <= 0 {
		codeTTL = 5 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if resendCooldown <= 0 {
		resendCooldown = 60 * time.Second
	}

	return &AuthService{
		userRepo:       userRepo,
		cacheRepo:      cacheRepo,
		sender:         sender,
		jwtService:     jwtService,
		codeTTL:        codeTTL,
		maxAttempts:    maxAttempts,
		resendCooldown: resendCooldown,
	}, nil
}

// RequestCode генерирует одноразовый код для номера, сохраняет challenge
// в кеше и отправляет код по SMS. Возвращает ID challenge для шага
// подтверждения.
func (s *AuthService) RequestCode(ctx context.Context, phoneNumber string) (string, error) {
	phoneNumber = normalizePhoneNumber(phoneNumber)
	if !phoneNumberPattern.MatchString(phoneNumber) {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidPhoneNumber, phoneNumber)
	}

	// Повторная отправка на тот же номер не чаще одного раза за resendCooldown
	resendKey := resendKeyPrefix + phoneNumber
	if _, err := s.cacheRepo.Get(resendKey); err == nil {
		return "", fmt.Errorf("%w: please wait before requesting a new code", apperrors.ErrTooManyRequests)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to check resend cooldown: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash verification code: %w", err)
	}

	challengeID := uuid.NewString()
	challenge := phoneChallenge{
		PhoneNumber: phoneNumber,
		CodeHash:    string(codeHash),
		Attempts:    0,
		CreatedAt:   time.Now(),
	}
	if err := s.cacheRepo.SetJSON(challengeKeyPrefix+challengeID, challenge, s.codeTTL); err != nil {
		return "", fmt.Errorf("failed to store challenge: %w", err)
	}

	if err := s.cacheRepo.Set(resendKey, "1", s.resendCooldown); err != nil {
		log.Printf("[AuthService] Ошибка установки resend cooldown для %s: %v", phoneNumber, err)
	}

	if err := s.sender.SendCode(ctx, phoneNumber, code); err != nil {
		// Недоставленный код бесполезен - подчищаем challenge
		if delErr := s.cacheRepo.Delete(challengeKeyPrefix + challengeID); delErr != nil {
			log.Printf("[AuthService] Ошибка удаления challenge после сбоя отправки: %v", delErr)
		}
		return "", fmt.Errorf("failed to send verification code: %w", err)
	}

	return challengeID, nil
}

// ConfirmCode проверяет одноразовый код. При успехе возвращает
// пользователя (создавая запись при первом входе) и access-токен.
func (s *AuthService) ConfirmCode(ctx context.Context, challengeID, code string) (*entity.User, string, error) {
	challengeKey := challengeKeyPrefix + challengeID

	var challenge phoneChallenge
	if err := s.cacheRepo.GetJSON(challengeKey, &challenge); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Истекший или несуществующий challenge неотличим для клиента
			// от неверного кода
			return nil, "", apperrors.ErrInvalidCode
		}
		return nil, "", fmt.Errorf("failed to load challenge: %w", err)
	}

	if challenge.Attempts >= s.maxAttempts {
		if err := s.cacheRepo.Delete(challengeKey); err != nil {
			log.Printf("[AuthService] Ошибка удаления исчерпанного challenge: %v", err)
		}
		return nil, "", fmt.Errorf("%w: attempts exhausted", apperrors.ErrTooManyRequests)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)); err != nil {
		challenge.Attempts++
		if err := s.cacheRepo.SetJSON(challengeKey, challenge, s.codeTTL); err != nil {
			log.Printf("[AuthService] Ошибка обновления счётчика попыток: %v", err)
		}
		return nil, "", apperrors.ErrInvalidCode
	}

	// Код верен: challenge одноразовый
	if err := s.cacheRepo.Delete(challengeKey); err != nil {
		log.Printf("[AuthService] Ошибка удаления использованного challenge: %v", err)
	}

	user, err := s.findOrCreateUser(challenge.PhoneNumber)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// findOrCreateUser возвращает пользователя по номеру, создавая запись
// при первом подтверждении
func (s *AuthService) findOrCreateUser(phoneNumber string) (*entity.User, error) {
	user, err := s.userRepo.GetByPhone(phoneNumber)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user = &entity.User{
		ID:                  uuid.NewString(),
		PhoneNumber:         phoneNumber,
		IsAdmin:             false,
		AnsweredQuestionIDs: entity.StringArray{},
	}
	if err := s.userRepo.Create(user); err != nil {
		// Гонка двух подтверждений одного номера: запись уже создана
		if errors.Is(err, apperrors.ErrConflict) {
			return s.userRepo.GetByPhone(phoneNumber)
		}
		return nil, err
	}

	log.Printf("[AuthService] Создан пользователь id=%s phone=%s", user.ID, user.PhoneNumber)
	return user, nil
}

// normalizePhoneNumber убирает пробелы и дефисы из номера
func normalizePhoneNumber(phoneNumber string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(phoneNumber))
}

// generateVerificationCode возвращает криптографически случайный 6-значный код
func generateVerificationCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
