package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerCount - фиксированное число вариантов ответа на вопрос
const AnswerCount = 4

// Answer представляет один вариант ответа на вопрос
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// AnswerList - пользовательский тип для хранения вариантов ответа в JSONB
type AnswerList []Answer

// Scan реализует интерфейс sql.Scanner для AnswerList
func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*a = AnswerList{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для AnswerList
func (a AnswerList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Question представляет вопрос викторины.
// Изображение хранится встроенным (base64 data URI), не ссылкой на файл.
type Question struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Text      string     `gorm:"size:500;not null" json:"text"`
	Image     string     `gorm:"type:text;not null;default:''" json:"image"`
	Answers   AnswerList `gorm:"type:jsonb;not null" json:"answers"`
	CreatedBy string     `gorm:"size:36;not null;index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate присваивает вопросу UUID, если он не задан
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedIndex int) bool {
	if !q.IsValidOption(selectedIndex) {
		return false
	}
	return q.Answers[selectedIndex].IsCorrect
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedIndex int) bool {
	return selectedIndex >= 0 && selectedIndex < len(q.Answers)
}

// CorrectIndex возвращает индекс правильного ответа или -1, если его нет
func (q *Question) CorrectIndex() int {
	for i, answer := range q.Answers {
		if answer.IsCorrect {
			return i
		}
	}
	return -1
}

// CorrectCount возвращает количество вариантов, помеченных как правильные
func (q *Question) CorrectCount() int {
	count := 0
	for _, answer := range q.Answers {
		if answer.IsCorrect {
			count++
		}
	}
	return count
}
