package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// SettingsService предоставляет методы для работы с глобальными настройками
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService создает новый сервис настроек
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get возвращает глобальные настройки, при отсутствии записи - значения
// по умолчанию
func (s *SettingsService) Get() (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return entity.DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateCooldownPolicy валидирует и сохраняет политику ожидания.
// Действует немедленно: следующая оценка допуска читает её заново.
func (s *SettingsService) UpdateCooldownPolicy(policy string) error {
	if !entity.IsValidCooldownPolicy(policy) {
		return fmt.Errorf("%w: unknown cooldown policy %q", apperrors.ErrValidation, policy)
	}

	if err := s.settingsRepo.UpdatePolicy(policy); err != nil {
		return fmt.Errorf("failed to update cooldown policy: %w", err)
	}

	log.Printf("[SettingsService] Политика ожидания изменена на %q", policy)
	return nil
}
