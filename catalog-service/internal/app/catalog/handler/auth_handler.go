package handler

import (
	"errors"
	"net/http"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/service"
	"maplemarket/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AuthHandler обрабатывает запросы аутентификации администраторов
type AuthHandler struct {
	authService service.AuthServiceInterface
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		metrics.RecordAuthLogin("failed")
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	metrics.RecordAuthLogin("success")
	c.JSON(http.StatusOK, resp)
}

// Me обрабатывает GET /auth/me
// Возвращает профиль текущего пользователя по токену
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := c.Get(ContextUserIDKey)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user context")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, user)
}
