package service

import (
	"context"
	"errors"
	"fmt"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/repository"
	"maplemarket/catalog-service/internal/app/catalog/util"

	"github.com/google/uuid"
)

// AuthService обрабатывает вход администраторов
// Регистрации нет: учетные записи заводятся миграцией/сидом
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login проверяет учетные данные и выпускает access токен
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.AccessTokenDuration().Seconds()),
		User:        user,
	}, nil
}

// GetUser получает пользователя по ID (для /auth/me)
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
