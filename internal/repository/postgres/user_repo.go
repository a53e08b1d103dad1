package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: phone number already registered", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByPhone возвращает пользователя по номеру телефона
func (r *UserRepo) GetByPhone(phoneNumber string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("phone_number = ?", phoneNumber).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RecordWin атомарно фиксирует выигрыш пользователя.
// Все три поля (answered_question_ids, last_played_at, next_allowed_at)
// обновляются одним UPDATE: частичное состояние невозможно. Добавление
// уже присутствующего questionID - no-op (семантика множества через
// проверку вхождения @> перед конкатенацией JSONB).
func (r *UserRepo) RecordWin(userID, questionID string, playedAt, nextAllowed time.Time) error {
	element, err := json.Marshal([]string{questionID})
	if err != nil {
		return fmt.Errorf("failed to marshal question id: %w", err)
	}

	result := r.db.Exec(`
		UPDATE users
		SET answered_question_ids = CASE
				WHEN answered_question_ids @> ?::jsonb THEN answered_question_ids
				ELSE answered_question_ids || ?::jsonb
			END,
			last_played_at = ?,
			next_allowed_at = ?,
			updated_at = ?
		WHERE id = ?`,
		string(element), string(element), playedAt, nextAllowed, time.Now(), userID,
	)
	if result.Error != nil {
		log.Printf("[UserRepo.RecordWin] Ошибка при записи выигрыша user=%s question=%s: %v",
			userID, questionID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

// ClearAnswered сбрасывает список отвеченных вопросов пользователя.
// Вызывается при исчерпании пула: пользователь ответил на все вопросы,
// и выбор снова идёт по полному корпусу.
func (r *UserRepo) ClearAnswered(userID string) error {
	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("answered_question_ids", gorm.Expr("'[]'::jsonb"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

// SetAdmin выдаёт или отзывает права администратора
func (r *UserRepo) SetAdmin(userID string, isAdmin bool) error {
	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_admin":   isAdmin,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

// List возвращает список пользователей с пагинацией
func (r *UserRepo) List(limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Limit(limit).Offset(offset).Order("created_at").Find(&users).Error
	return users, err
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
