package handler

import (
	"net/http"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/util"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Catalog Service с использованием Gin
// Публичное чтение каталога, запись только для роли admin
func SetupRoutes(
	catalogHandler *CatalogHandler,
	authHandler *AuthHandler,
	jwtManager *util.JWTManager,
	uploadDir string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint - публичный, без аутентификации
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-service",
		})
	})

	// Prometheus метрики
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Загруженные изображения товаров
	router.Static("/uploads", uploadDir)

	// Auth endpoints
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", Authenticate(jwtManager), authHandler.Me)
	}

	// Публичный каталог - аутентификация не требуется
	products := router.Group("/products")
	{
		products.GET("", catalogHandler.GetAllProducts) // Список товаров с ценой в валюте
		products.GET("/:id", catalogHandler.GetProduct) // Товар по ID
	}

	// Админка каталога - только для роли admin
	admin := router.Group("/admin/products")
	admin.Use(Authenticate(jwtManager), RequireRole("admin"))
	{
		admin.POST("", catalogHandler.CreateProduct)                 // Создать товар
		admin.PUT("/:id", catalogHandler.UpdateProduct)              // Обновить товар (ставит уведомление при изменении цены)
		admin.DELETE("/:id", catalogHandler.DeleteProduct)           // Удалить товар
		admin.POST("/:id/image", catalogHandler.UploadProductImage)  // Загрузить изображение
	}

	return router
}
