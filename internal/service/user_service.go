package service

import (
	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
	"github.com/yourusername/rewardquiz-api/internal/domain/repository"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(id string) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// PromoteByPhone выдаёт права администратора пользователю по номеру
// телефона. Используется CLI-утилитой make-admin.
func (s *UserService) PromoteByPhone(phoneNumber string) (*entity.User, error) {
	user, err := s.userRepo.GetByPhone(phoneNumber)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return user, nil
	}
	if err := s.userRepo.SetAdmin(user.ID, true); err != nil {
		return nil, err
	}
	user.IsAdmin = true
	return user, nil
}
