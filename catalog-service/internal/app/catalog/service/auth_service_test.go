package service

import (
	"context"
	"testing"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/repository"
	"maplemarket/catalog-service/internal/app/catalog/repository/mocks"
	"maplemarket/catalog-service/internal/app/catalog/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager() *util.JWTManager {
	return util.NewJWTManager("test-secret", time.Hour)
}

func newTestAdmin(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         "admin",
		CreatedAt:    time.Now(),
	}
}

// ==================== Login Tests ====================

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	user := newTestAdmin(t, "secret123")

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	service := NewAuthService(userRepo, newTestJWTManager())

	// Act
	resp, err := service.Login(ctx, &entity.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, user.Email, resp.User.Email)

	// Выпущенный токен валиден и содержит роль
	claims, err := newTestJWTManager().ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	user := newTestAdmin(t, "secret123")

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	service := NewAuthService(userRepo, newTestJWTManager())

	// Act
	resp, err := service.Login(ctx, &entity.LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})

	// Assert
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	service := NewAuthService(userRepo, newTestJWTManager())

	// Act
	resp, err := service.Login(ctx, &entity.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	// Assert
	// Несуществующий пользователь неотличим от неверного пароля
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

// ==================== GetUser Tests ====================

func TestAuthService_GetUser_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	user := newTestAdmin(t, "secret123")

	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	service := NewAuthService(userRepo, newTestJWTManager())

	// Act
	got, err := service.GetUser(ctx, user.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}
