package repository

import (
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByPhone(phoneNumber string) (*entity.User, error)

	// RecordWin атомарно фиксирует выигрыш: добавляет questionID в
	// answered_question_ids (повторное добавление - no-op), устанавливает
	// last_played_at и next_allowed_at. Все три поля обновляются одним
	// SQL-запросом - либо вместе, либо никак.
	RecordWin(userID, questionID string, playedAt, nextAllowed time.Time) error

	// ClearAnswered сбрасывает список отвеченных вопросов (исчерпание пула)
	ClearAnswered(userID string) error

	// SetAdmin выдаёт или отзывает права администратора
	SetAdmin(userID string, isAdmin bool) error

	// List возвращает список пользователей с пагинацией
	List(limit, offset int) ([]entity.User, error)
}
