package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// SettingsRepo реализует repository.SettingsRepository
type SettingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo создает новый репозиторий настроек
func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get возвращает глобальные настройки
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	var settings entity.Settings
	err := r.db.Where("id = ?", entity.GlobalSettingsID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// UpdatePolicy сохраняет политику ожидания (upsert единственной записи)
func (r *SettingsRepo) UpdatePolicy(policy string) error {
	settings := entity.Settings{
		ID:             entity.GlobalSettingsID,
		CooldownPolicy: policy,
		UpdatedAt:      time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cooldown_policy", "updated_at"}),
	}).Create(&settings).Error
}
