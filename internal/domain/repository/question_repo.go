package repository

import (
	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id string) (*entity.Question, error)
	Update(question *entity.Question) error
	Delete(id string) error

	// ListAll возвращает весь корпус вопросов, отсортированный по дате создания
	ListAll() ([]entity.Question, error)

	// ListByCreator возвращает вопросы, созданные конкретным пользователем
	ListByCreator(createdBy string) ([]entity.Question, error)

	Count() (int64, error)
}
