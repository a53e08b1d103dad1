package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/rewardquiz-api/internal/handler/dto"
	"github.com/yourusername/rewardquiz-api/internal/service"
)

// AuthHandler обрабатывает запросы аутентификации по номеру телефона
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RequestCodeRequest представляет запрос на отправку SMS-кода
type RequestCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=20"`
}

// RequestCode обрабатывает запрос на отправку одноразового кода
// POST /api/auth/request-code
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challengeID, err := h.authService.RequestCode(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChallengeResponse{ChallengeID: challengeID})
}

// ConfirmCodeRequest представляет запрос на подтверждение кода
type ConfirmCodeRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required,uuid"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
}

// ConfirmCode обрабатывает подтверждение одноразового кода.
// При успехе возвращает access-токен и пользователя (создавая запись
// при первом входе).
// POST /api/auth/verify-code
func (h *AuthHandler) ConfirmCode(c *gin.Context) {
	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.ConfirmCode(c.Request.Context(), req.ChallengeID, req.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	})
}
