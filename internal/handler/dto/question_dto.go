package dto

import (
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
)

// AnswerOption представляет вариант ответа для игрока: без флага
// правильности
type AnswerOption struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// AdminAnswerOption представляет вариант ответа в админке, включая флаг
// правильности
type AdminAnswerOption struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionResponse представляет вопрос в формате для игрока.
// Правильный ответ никогда не попадает в этот DTO.
type QuestionResponse struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Image   string         `json:"image,omitempty"`
	Answers []AnswerOption `json:"answers"`
}

// AdminQuestionResponse представляет вопрос в формате для админки
type AdminQuestionResponse struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Image     string              `json:"image,omitempty"`
	Answers   []AdminAnswerOption `json:"answers"`
	CreatedBy string              `json:"created_by,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewQuestionResponse создает DTO вопроса для игрока
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	answers := make([]AnswerOption, 0, len(q.Answers))
	for i, a := range q.Answers {
		answers = append(answers, AnswerOption{Index: i, Text: a.Text})
	}
	return &QuestionResponse{
		ID:      q.ID,
		Text:    q.Text,
		Image:   q.Image,
		Answers: answers,
	}
}

// NewAdminQuestionResponse создает DTO вопроса для админки
func NewAdminQuestionResponse(q *entity.Question) *AdminQuestionResponse {
	answers := make([]AdminAnswerOption, 0, len(q.Answers))
	for i, a := range q.Answers {
		answers = append(answers, AdminAnswerOption{Index: i, Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return &AdminQuestionResponse{
		ID:        q.ID,
		Text:      q.Text,
		Image:     q.Image,
		Answers:   answers,
		CreatedBy: q.CreatedBy,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// NewAdminQuestionListResponse создает список DTO вопросов для админки
func NewAdminQuestionListResponse(questions []entity.Question) []*AdminQuestionResponse {
	responses := make([]*AdminQuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, NewAdminQuestionResponse(&questions[i]))
	}
	return responses
}
