package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"maplemarket/catalog-service/internal/app/catalog/config"
	"maplemarket/catalog-service/internal/app/catalog/handler"
	"maplemarket/catalog-service/internal/app/catalog/repository"
	"maplemarket/catalog-service/internal/app/catalog/service"
	"maplemarket/catalog-service/internal/app/catalog/util"
	"maplemarket/pkg/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		logger.InitConsole("catalog-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("catalog-service", cfg.LogLevel)

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL (GORM) ===
	// GORM используется для таблицы товаров
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL (gorm)")

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL (PGX POOL) ===
	// Отдельный пул для таблицы пользователей
	pool, err := connectPool(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database pool")
	}
	defer pool.Close()
	logger.Info().Msg("Successfully connected to PostgreSQL (pgx pool)")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis хранит закешированный курс валют
	redisClient, err := connectRedis(context.Background(), cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// Producer отправляет события PRICE_CHANGED в топик price_change_events
	// Notification Worker подписан на этот топик для отправки писем
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Msg("Successfully initialized Kafka producer")

	// === ИНИЦИАЛИЗАЦИЯ СЛОЯ РЕПОЗИТОРИЕВ ===
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(pool)
	rateCacheRepo := repository.NewRateCacheRepository(
		redisClient,
		cfg.ExchangeAPI.CacheKey,
		cfg.ExchangeAPI.CacheTTL,
	)

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)

	rateAPIClient := service.NewExchangeRateAPIClient(cfg.ExchangeAPI.URL, cfg.ExchangeAPI.Timeout)
	rateService := service.NewExchangeRateService(
		rateCacheRepo,
		rateAPIClient,
		cfg.ExchangeAPI.Currency,
		cfg.ExchangeAPI.DefaultRate,
	)

	priceChangeService := service.NewPriceChangeService(kafkaProducer, cfg.Price.NotificationEmail)
	catalogService := service.NewCatalogService(productRepo, priceChangeService)
	authService := service.NewAuthService(userRepo, jwtManager)

	imageService, err := service.NewImageService(
		cfg.Upload.Dir,
		cfg.Upload.MaxSizeBytes,
		cfg.Upload.PlaceholderPath,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize image storage")
	}

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	catalogHandler := handler.NewCatalogHandler(catalogService, rateService, imageService)
	authHandler := handler.NewAuthHandler(authService)

	// === НАСТРОЙКА МАРШРУТОВ ===
	router := handler.SetupRoutes(catalogHandler, authHandler, jwtManager, cfg.Upload.Dir)

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	// Production-ready настройки с таймаутами
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second, // Таймаут чтения запроса
		WriteTimeout: 15 * time.Second, // Таймаут записи ответа
		IdleTimeout:  60 * time.Second, // Таймаут idle соединений
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	// Запускаем сервер в отдельной горутине для graceful shutdown
	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	// Ожидаем сигнала завершения (SIGINT или SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	// Даем серверу 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL используя GORM
// Retry logic с 10 попытками для устойчивости при запуске в Docker
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				if pingErr := sqlDB.Ping(); pingErr != nil {
					err = pingErr
				} else {
					// Настраиваем connection pool
					sqlDB.SetMaxOpenConns(10)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectPool создает pgx connection pool для таблицы пользователей
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.PgxURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// Пробуем подключиться с повторными попытками
	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database pool")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectRedis устанавливает соединение с Redis
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Проверяем соединение с retry logic
	for i := 0; i < 10; i++ {
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Msg("Failed to connect to Redis")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts")
}
