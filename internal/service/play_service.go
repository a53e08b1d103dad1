package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// QuestionProvider отдаёт корпус вопросов для оценки допуска.
// Реализуется QuestionService (чтение через кеш).
type QuestionProvider interface {
	ListQuestions() ([]entity.Question, error)
}

// AnswerResult - результат проверки ответа пользователя
type AnswerResult struct {
	Correct       bool       `json:"correct"`
	NextAllowedAt *time.Time `json:"next_allowed_at,omitempty"`
}

// PlayService управляет игровым циклом: оценка допуска, выбор вопроса
// и фиксация выигрыша.
type PlayService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	settingsRepo repository.SettingsRepository
	questions    QuestionProvider

	// Источник случайности инжектируется для детерминизма в тестах.
	// rand.Rand не потокобезопасен, поэтому защищён мьютексом.
	rngMu sync.Mutex
	rng   *rand.Rand

	// now абстрагирует часы для тестов
	now func() time.Time
}

// NewPlayService создает новый игровой сервис
func NewPlayService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	settingsRepo repository.SettingsRepository,
	questions QuestionProvider,
	rng *rand.Rand,
) *PlayService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PlayService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		settingsRepo: settingsRepo,
		questions:    questions,
		rng:          rng,
		now:          time.Now,
	}
}

// NextQuestion оценивает допуск пользователя и возвращает результат:
// ожидание, выбранный вопрос или пустой корпус.
//
// При исчерпании пула список отвеченных вопросов сбрасывается сразу,
// в рамках этого же вызова - поведение исходного приложения. Ошибка
// сброса не блокирует выдачу вопроса: следующая оценка повторит сброс.
func (s *PlayService) NextQuestion(userID string) (*Outcome, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	settings := s.currentSettings()

	questions, err := s.questions.ListQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to load question corpus: %w", err)
	}

	s.rngMu.Lock()
	outcome := Evaluate(user, settings, questions, s.now(), s.rng)
	s.rngMu.Unlock()

	if outcome.PoolExhausted {
		if err := s.userRepo.ClearAnswered(userID); err != nil {
			log.Printf("[PlayService] Ошибка сброса отвеченных вопросов user=%s: %v", userID, err)
		}
	}

	return &outcome, nil
}

// SubmitAnswer проверяет ответ пользователя. Правильный ответ атомарно
// фиксируется как выигрыш; неправильный не меняет состояние - клиент
// может пробовать снова.
func (s *PlayService) SubmitAnswer(userID, questionID string, answerIndex int) (*AnswerResult, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	if !question.IsValidOption(answerIndex) {
		return nil, fmt.Errorf("%w: answer index %d out of range", apperrors.ErrValidation, answerIndex)
	}

	if !question.IsCorrect(answerIndex) {
		return &AnswerResult{Correct: false}, nil
	}

	now := s.now()
	nextAllowed := NextMidnight(now)

	// next_allowed_at всегда вычисляется до следующей полуночи независимо
	// от активной политики: какую границу применять, решает Evaluate по
	// политике на момент следующей оценки.
	if err := s.userRepo.RecordWin(userID, questionID, now, nextAllowed); err != nil {
		return nil, fmt.Errorf("failed to record win: %w", err)
	}

	return &AnswerResult{Correct: true, NextAllowedAt: &nextAllowed}, nil
}

// CooldownRemaining возвращает конец текущего ожидания пользователя,
// если оно активно. Используется WebSocket-стримом обратного отсчёта.
func (s *PlayService) CooldownRemaining(userID string) (until time.Time, active bool, err error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return time.Time{}, false, err
	}

	settings := s.currentSettings()
	now := s.now()

	cooldownEnd := CooldownEnd(user, settings)
	if cooldownEnd.IsZero() || !now.Before(cooldownEnd) {
		return time.Time{}, false, nil
	}
	return cooldownEnd, true, nil
}

// currentSettings читает глобальные настройки, при отсутствии записи
// возвращает значения по умолчанию
func (s *PlayService) currentSettings() *entity.Settings {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[PlayService] Ошибка чтения настроек, используется политика по умолчанию: %v", err)
		}
		return entity.DefaultSettings()
	}
	return settings
}
