package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/rewardquiz-api/internal/handler/dto"
	"github.com/yourusername/rewardquiz-api/internal/service"
)

// PlayHandler обрабатывает игровые запросы
type PlayHandler struct {
	playService *service.PlayService
}

// NewPlayHandler создает новый игровой обработчик
func NewPlayHandler(playService *service.PlayService) *PlayHandler {
	return &PlayHandler{playService: playService}
}

// NextQuestion возвращает текущее игровое состояние пользователя:
// вопрос, активное ожидание или пустой корпус
// GET /api/play/next
func (h *PlayHandler) NextQuestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome, err := h.playService.NextQuestion(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPlayStateResponse(outcome, time.Now()))
}

// SubmitAnswerRequest представляет запрос на проверку ответа
type SubmitAnswerRequest struct {
	QuestionID  string `json:"question_id" binding:"required,uuid"`
	AnswerIndex *int   `json:"answer_index" binding:"required,min=0,max=3"`
}

// SubmitAnswer проверяет ответ пользователя. Правильный ответ
// фиксируется как выигрыш и запускает ожидание; неправильный не меняет
// состояние.
// POST /api/play/answer
func (h *PlayHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playService.SubmitAnswer(userID, req.QuestionID, *req.AnswerIndex)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnswerResponse{
		Correct:       result.Correct,
		NextAllowedAt: result.NextAllowedAt,
	})
}
