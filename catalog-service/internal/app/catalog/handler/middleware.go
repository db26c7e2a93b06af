package handler

import (
	"net/http"
	"strings"

	"maplemarket/catalog-service/internal/app/catalog/util"

	"github.com/gin-gonic/gin"
)

// Ключи контекста gin с данными аутентифицированного пользователя
const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "user_email"
	ContextRoleKey   = "user_role"
)

// Authenticate проверяет Bearer токен и кладет данные пользователя в контекст
func Authenticate(jwtManager *util.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole пускает дальше только пользователей с указанной ролью
// Используется после Authenticate
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ContextRoleKey)
		if !ok || value != role {
			respondError(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
