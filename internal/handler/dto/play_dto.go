package dto

import (
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/pkg/countdown"
	"github.com/yourusername/rewardquiz-api/internal/service"
)

// PlayStateResponse представляет результат оценки допуска к игре.
// Ровно одно из полей question / cooldown заполнено при соответствующем
// статусе.
type PlayStateResponse struct {
	Status   string            `json:"status"` // "question" | "cooldown" | "no_questions"
	Question *QuestionResponse `json:"question,omitempty"`
	Cooldown *CooldownInfo     `json:"cooldown,omitempty"`
}

// CooldownInfo описывает активное ожидание
type CooldownInfo struct {
	Until time.Time `json:"until"`
	// Remaining - человекочитаемый остаток, например "1 Minute 30 Sekunden"
	Remaining string `json:"remaining"`
}

// NewPlayStateResponse создает DTO результата оценки допуска
func NewPlayStateResponse(outcome *service.Outcome, now time.Time) *PlayStateResponse {
	resp := &PlayStateResponse{Status: string(outcome.Status)}
	switch outcome.Status {
	case service.OutcomeQuestion:
		resp.Question = NewQuestionResponse(outcome.Question)
	case service.OutcomeCooldown:
		resp.Cooldown = &CooldownInfo{
			Until:     outcome.CooldownUntil,
			Remaining: countdown.FormatRemaining(outcome.CooldownUntil.Sub(now)),
		}
	}
	return resp
}

// AnswerResponse представляет результат проверки ответа
type AnswerResponse struct {
	Correct       bool       `json:"correct"`
	NextAllowedAt *time.Time `json:"next_allowed_at,omitempty"`
}

// SettingsResponse представляет глобальные настройки
type SettingsResponse struct {
	CooldownPolicy string    `json:"cooldown_policy"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSettingsResponse создает DTO настроек
func NewSettingsResponse(settings *entity.Settings) *SettingsResponse {
	return &SettingsResponse{
		CooldownPolicy: settings.CooldownPolicy,
		UpdatedAt:      settings.UpdatedAt,
	}
}
