package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddlewareRouter(jwtManager *util.JWTManager, role string) *gin.Engine {
	router := gin.New()
	group := router.Group("/admin")
	group.Use(Authenticate(jwtManager))
	if role != "" {
		group.Use(RequireRole(role))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// ==================== Authenticate Tests ====================

func TestAuthenticate_ValidToken(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateAccessToken(uuid.New(), "admin@example.com", "admin")
	require.NoError(t, err)

	router := newTestMiddlewareRouter(jwtManager, "")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := newTestMiddlewareRouter(jwtManager, "")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := newTestMiddlewareRouter(jwtManager, "")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	// Arrange
	otherManager := util.NewJWTManager("other-secret", time.Hour)
	token, err := otherManager.GenerateAccessToken(uuid.New(), "admin@example.com", "admin")
	require.NoError(t, err)

	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := newTestMiddlewareRouter(jwtManager, "")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ==================== RequireRole Tests ====================

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateAccessToken(uuid.New(), "admin@example.com", "admin")
	require.NoError(t, err)

	router := newTestMiddlewareRouter(jwtManager, "admin")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateAccessToken(uuid.New(), "user@example.com", "customer")
	require.NoError(t, err)

	router := newTestMiddlewareRouter(jwtManager, "admin")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
