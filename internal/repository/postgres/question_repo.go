package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Update обновляет вопрос
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос по ID
func (r *QuestionRepo) Delete(id string) error {
	result := r.db.Delete(&entity.Question{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: question %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// ListAll возвращает весь корпус вопросов, новые первыми
func (r *QuestionRepo) ListAll() ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Order("created_at DESC").Find(&questions).Error
	return questions, err
}

// ListByCreator возвращает вопросы, созданные конкретным пользователем
func (r *QuestionRepo) ListByCreator(createdBy string) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("created_by = ?", createdBy).Order("created_at DESC").Find(&questions).Error
	return questions, err
}

// Count возвращает размер корпуса вопросов
func (r *QuestionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Count(&count).Error
	return count, err
}
