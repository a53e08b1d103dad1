package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/rewardquiz-api/internal/handler/dto"
	"github.com/yourusername/rewardquiz-api/internal/service"
)

// SettingsHandler обрабатывает запросы к глобальным настройкам
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings возвращает текущие глобальные настройки
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

// UpdateSettingsRequest представляет запрос на изменение настроек
type UpdateSettingsRequest struct {
	CooldownPolicy string `json:"cooldown_policy" binding:"required"`
}

// UpdateSettings изменяет политику ожидания. Действует немедленно для
// всех последующих оценок допуска.
// PUT /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.UpdateCooldownPolicy(req.CooldownPolicy); err != nil {
		handleServiceError(c, err)
		return
	}

	settings, err := h.settingsService.Get()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}
