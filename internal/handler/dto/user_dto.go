package dto

import (
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID            string     `json:"id"`
	PhoneNumber   string     `json:"phone_number"`
	IsAdmin       bool       `json:"is_admin"`
	LastPlayedAt  *time.Time `json:"last_played_at,omitempty"`
	NextAllowedAt *time.Time `json:"next_allowed_at,omitempty"`
	AnsweredCount int        `json:"answered_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:            user.ID,
		PhoneNumber:   user.PhoneNumber,
		IsAdmin:       user.IsAdmin,
		LastPlayedAt:  user.LastPlayedAt,
		NextAllowedAt: user.NextAllowedAt,
		AnsweredCount: len(user.AnsweredQuestionIDs),
		CreatedAt:     user.CreatedAt,
	}
}

// AuthResponse представляет результат успешного подтверждения кода
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

// ChallengeResponse представляет результат запроса кода
type ChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
}
