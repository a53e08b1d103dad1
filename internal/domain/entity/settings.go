package entity

import "time"

// Политики ожидания между правильными ответами
const (
	// CooldownPerMinute - одна минута ожидания после правильного ответа
	CooldownPerMinute = "per_minute"

	// CooldownUntilMidnight - ожидание до следующей полуночи (локальное время)
	CooldownUntilMidnight = "until_midnight"
)

// GlobalSettingsID - ID единственной записи настроек
const GlobalSettingsID = "global"

// Settings представляет глобальные настройки приложения.
// В базе существует ровно одна запись с ID = "global"; менять её могут
// только администраторы. Политика читается заново при каждой оценке
// допуска, поэтому смена политики действует немедленно.
type Settings struct {
	ID             string    `gorm:"primaryKey;size:16" json:"id"`
	CooldownPolicy string    `gorm:"size:20;not null;default:'per_minute'" json:"cooldown_policy"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Settings) TableName() string {
	return "settings"
}

// IsValidCooldownPolicy проверяет, что значение политики входит в перечисление
func IsValidCooldownPolicy(policy string) bool {
	return policy == CooldownPerMinute || policy == CooldownUntilMidnight
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() *Settings {
	return &Settings{
		ID:             GlobalSettingsID,
		CooldownPolicy: CooldownPerMinute,
	}
}
