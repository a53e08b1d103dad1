package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Contains проверяет наличие элемента в массиве
func (o StringArray) Contains(v string) bool {
	for _, item := range o {
		if item == v {
			return true
		}
	}
	return false
}

// User представляет пользователя в системе.
// ID - это стабильный идентификатор субъекта (UUID), выдаваемый при первом
// подтверждении номера телефона. Поля last_played_at / next_allowed_at /
// answered_question_ids изменяются только при записи выигрыша (PlayService).
type User struct {
	ID                  string      `gorm:"primaryKey;size:36" json:"id"`
	PhoneNumber         string      `gorm:"size:20;not null;uniqueIndex" json:"phone_number"`
	IsAdmin             bool        `gorm:"not null;default:false" json:"is_admin"`
	LastPlayedAt        *time.Time  `gorm:"type:timestamptz" json:"last_played_at,omitempty"`
	NextAllowedAt       *time.Time  `gorm:"type:timestamptz" json:"next_allowed_at,omitempty"`
	AnsweredQuestionIDs StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"answered_question_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// HasPlayed возвращает true, если пользователь хотя бы раз отвечал правильно
func (u *User) HasPlayed() bool {
	return u.LastPlayedAt != nil
}

// HasAnswered проверяет, отвечал ли пользователь на вопрос с данным ID
func (u *User) HasAnswered(questionID string) bool {
	return u.AnsweredQuestionIDs.Contains(questionID)
}
