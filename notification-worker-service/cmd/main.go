package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/config"
	"maplemarket/notification-worker-service/internal/app/notification-worker/handler"
	"maplemarket/notification-worker-service/internal/app/notification-worker/processor"
	"maplemarket/notification-worker-service/internal/app/notification-worker/repository"
	"maplemarket/notification-worker-service/internal/app/notification-worker/service"
	"maplemarket/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		logger.InitConsole("notification-worker", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("notification-worker", cfg.LogLevel)
	logger.Info().Msg("Starting Notification Worker Service...")

	ctx := context.Background()

	// === ПОДКЛЮЧЕНИЕ К MONGODB ===
	// MongoDB хранит журнал отправленных уведомлений
	mongoClient, err := connectMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)
	logger.Info().Msg("Successfully connected to MongoDB")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis хранит слот кеша курса валют, общий с каталогом
	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ ===
	logRepo := repository.NewNotificationLogRepository(mongoClient.Database(cfg.Mongo.Database))
	rateCacheRepo := repository.NewRateCacheRepository(redisClient, cfg.Redis.CacheKey, cfg.Redis.TTL)

	// === ИНИЦИАЛИЗАЦИЯ СЕРВИСОВ ===
	mailer := service.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	notificationSvc := service.NewNotificationService(mailer, logRepo)

	apiClient := service.NewExchangeRateAPIClient(cfg.ExchangeAPI.URL, cfg.ExchangeAPI.Timeout)
	rateRefresher := service.NewRateRefresherService(rateCacheRepo, apiClient, cfg.ExchangeAPI.Currency)

	// === ИНИЦИАЛИЗАЦИЯ KAFKA CONSUMER ===
	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		notificationSvc,
	)

	kafkaConsumer.Start(ctx)
	defer kafkaConsumer.Stop()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Str("group", cfg.Kafka.GroupID).
		Msg("Kafka consumer started")

	// === ИНИЦИАЛИЗАЦИЯ CRON SCHEDULER ===
	// Периодический прогрев кеша курса валют
	cronScheduler := processor.NewCronScheduler(rateRefresher)
	if err := cronScheduler.Start(ctx, cfg.CronSchedule.RefreshRates); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}
	defer cronScheduler.Stop()
	logger.Info().Str("schedule", cfg.CronSchedule.RefreshRates).Msg("Cron scheduler started")

	// === ИНИЦИАЛИЗАЦИЯ HEALTHCHECK HTTP СЕРВЕРА ===
	healthHandler := handler.NewHealthCheckHandler(mongoClient, redisClient, rateCacheRepo)

	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("Starting healthcheck HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info().Msg("Notification Worker Service is running")
	logger.Info().Msg("Waiting for PRICE_CHANGED events from Kafka...")

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Notification Worker Service...")
}

// connectMongo устанавливает соединение с MongoDB с retry logic
func connectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongo.Connect(connectCtx, clientOptions)
		if err == nil {
			if err = client.Ping(connectCtx, readpref.Primary()); err == nil {
				cancel()
				return client, nil
			}
			client.Disconnect(connectCtx)
		}
		cancel()
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to MongoDB")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after 10 attempts: %w", err)
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

	for i := 0; i < 10; i++ {
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Msg("Failed to connect to Redis")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts")
}
