package repository

import (
	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
)

// SettingsRepository определяет методы для работы с глобальными настройками
type SettingsRepository interface {
	// Get возвращает глобальные настройки или ErrNotFound, если запись отсутствует
	Get() (*entity.Settings, error)

	// UpdatePolicy сохраняет политику ожидания (upsert единственной записи)
	UpdatePolicy(policy string) error
}
