package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Notification Worker Service
// Включает конфигурацию для Kafka, SMTP, MongoDB, Redis и внешнего API валют
type Config struct {
	Kafka        KafkaConfig
	SMTP         SMTPConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	ExchangeAPI  ExchangeAPIConfig
	CronSchedule CronScheduleConfig
	HTTPPort     string
	LogLevel     string
}

// KafkaConfig - настройки Kafka для подписки на события
// Слушает топик price_change_events для обработки PRICE_CHANGED
type KafkaConfig struct {
	Brokers  []string // Список брокеров Kafka (формат: host:port)
	Topic    string   // Топик для прослушивания (price_change_events)
	GroupID  string   // ID группы потребителей для распределения нагрузки
	MinBytes int      // Минимум байт для fetch запроса
	MaxBytes int      // Максимум байт для fetch запроса
}

// SMTPConfig - настройки SMTP сервера для отправки писем
type SMTPConfig struct {
	Host     string // Хост SMTP сервера
	Port     int    // Порт SMTP (обычно 587)
	Username string // Имя пользователя SMTP
	Password string // Пароль SMTP
	From     string // Адрес отправителя
}

// MongoConfig - настройки MongoDB для журнала отправленных уведомлений
type MongoConfig struct {
	URI      string // URI подключения (mongodb://host:port)
	Database string // Имя базы данных
}

// RedisConfig - настройки подключения к Redis
// Worker прогревает тот же слот кеша курса, который читает каталог
type RedisConfig struct {
	Host     string        // Хост Redis
	Port     string        // Порт Redis
	Password string        // Пароль Redis
	DB       int           // Номер БД Redis
	CacheKey string        // Ключ слота кеша курса
	TTL      time.Duration // TTL закешированного курса
}

// ExchangeAPIConfig - настройки внешнего API курсов валют
type ExchangeAPIConfig struct {
	URL      string        // URL API курсов
	Timeout  time.Duration // Таймаут исходящего запроса
	Currency string        // Целевая валюта (EUR)
}

// CronScheduleConfig - настройки расписания cron задач
type CronScheduleConfig struct {
	RefreshRates string // Расписание прогрева кеша курса (например, "*/30 * * * *")
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	return &Config{
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "price_change_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "notification-worker"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10*1024*1024),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@maplemarket.local"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "notifications"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheKey: getEnv("EXCHANGE_CACHE_KEY", "rates:EUR"),
			TTL:      time.Duration(getEnvInt("EXCHANGE_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		ExchangeAPI: ExchangeAPIConfig{
			URL:      getEnv("EXCHANGE_API_URL", "https://open.er-api.com/v6/latest/USD"),
			Timeout:  time.Duration(getEnvInt("EXCHANGE_API_TIMEOUT_SECONDS", 5)) * time.Second,
			Currency: getEnv("EXCHANGE_CURRENCY", "EUR"),
		},
		CronSchedule: CronScheduleConfig{
			RefreshRates: getEnv("CRON_REFRESH_RATES", "*/30 * * * *"),
		},
		HTTPPort: getEnv("HTTP_PORT", "8082"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает значение переменной окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}
