package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
	"github.com/yourusername/rewardquiz-api/internal/pkg/imaging"
)

const (
	questionsCacheKey = "questions:all"
	questionsCacheTTL = 5 * time.Minute
)

// QuestionService предоставляет методы для управления корпусом вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, cacheRepo repository.CacheRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// ListQuestions возвращает весь корпус вопросов. Читает через кеш:
// промах заполняет кеш, ошибки кеша не фатальны.
func (s *QuestionService) ListQuestions() ([]entity.Question, error) {
	var cached []entity.Question
	if err := s.cacheRepo.GetJSON(questionsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[QuestionService] Ошибка чтения кеша вопросов: %v", err)
	}

	questions, err := s.questionRepo.ListAll()
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(questionsCacheKey, questions, questionsCacheTTL); err != nil {
		log.Printf("[QuestionService] Ошибка записи кеша вопросов: %v", err)
	}

	return questions, nil
}

// GetQuestion возвращает вопрос по ID
func (s *QuestionService) GetQuestion(id string) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// ListByCreator возвращает вопросы, созданные конкретным пользователем
func (s *QuestionService) ListByCreator(createdBy string) ([]entity.Question, error) {
	return s.questionRepo.ListByCreator(createdBy)
}

// CreateQuestion валидирует и сохраняет новый вопрос
func (s *QuestionService) CreateQuestion(text, image string, answers []entity.Answer, createdBy string) (*entity.Question, error) {
	if err := validateQuestion(text, image, answers); err != nil {
		return nil, err
	}

	question := &entity.Question{
		Text:      strings.TrimSpace(text),
		Image:     image,
		Answers:   answers,
		CreatedBy: createdBy,
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.invalidateCache()
	return question, nil
}

// UpdateQuestion применяет изменения к существующему вопросу.
// Непереданные поля (nil) остаются без изменений.
func (s *QuestionService) UpdateQuestion(id string, text, image *string, answers []entity.Answer) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if text != nil {
		question.Text = strings.TrimSpace(*text)
	}
	if image != nil {
		question.Image = *image
	}
	if answers != nil {
		question.Answers = answers
	}

	if err := validateQuestion(question.Text, question.Image, question.Answers); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.invalidateCache()
	return question, nil
}

// DeleteQuestion удаляет вопрос по ID
func (s *QuestionService) DeleteQuestion(id string) error {
	if err := s.questionRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// Count возвращает размер корпуса вопросов
func (s *QuestionService) Count() (int64, error) {
	return s.questionRepo.Count()
}

func (s *QuestionService) invalidateCache() {
	if err := s.cacheRepo.Delete(questionsCacheKey); err != nil {
		log.Printf("[QuestionService] Ошибка инвалидации кеша вопросов: %v", err)
	}
}

// validateQuestion проверяет инварианты вопроса: непустой текст,
// фиксированное число вариантов, ровно один правильный, корректное
// встроенное изображение.
func validateQuestion(text, image string, answers []entity.Answer) error {
	if len(strings.TrimSpace(text)) < 3 {
		return fmt.Errorf("%w: question text must be at least 3 characters", apperrors.ErrValidation)
	}

	if len(answers) != entity.AnswerCount {
		return fmt.Errorf("%w: expected %d answers, got %d", apperrors.ErrValidation, entity.AnswerCount, len(answers))
	}

	correct := 0
	for i, answer := range answers {
		if strings.TrimSpace(answer.Text) == "" {
			return fmt.Errorf("%w: answer %d has empty text", apperrors.ErrValidation, i)
		}
		if answer.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("%w: exactly one answer must be marked correct, got %d", apperrors.ErrValidation, correct)
	}

	if image != "" {
		if err := imaging.ValidateDataURI(image); err != nil {
			return err
		}
	}

	return nil
}
