package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Catalog Service
// Включает конфигурацию для HTTP сервера, PostgreSQL, Redis, Kafka, JWT,
// внешнего API курсов валют, уведомлений о смене цены и загрузки изображений
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	JWT         JWTConfig
	ExchangeAPI ExchangeAPIConfig
	Price       PriceConfig
	Upload      UploadConfig
	LogLevel    string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8081)
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Используется для хранения товаров и администраторов
type DatabaseConfig struct {
	Host     string // Хост PostgreSQL
	Port     string // Порт PostgreSQL
	User     string // Имя пользователя БД
	Password string // Пароль БД
	DBName   string // Имя базы данных
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

// RedisConfig - настройки подключения к Redis
// Используется для кеширования курса валют
type RedisConfig struct {
	Host     string // Хост Redis
	Port     string // Порт Redis
	Password string // Пароль Redis (опционально)
	DB       int    // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для отправки событий
// События отправляются при изменении цены товара
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий PRICE_CHANGED
}

// JWTConfig - настройки для выпуска и проверки JWT токенов администраторов
type JWTConfig struct {
	Secret         string        // Секретный ключ для подписи токенов
	AccessTokenTTL time.Duration // Время жизни access токена
}

// ExchangeAPIConfig - настройки внешнего API курсов валют и кеша курса
type ExchangeAPIConfig struct {
	URL         string        // URL API курсов (тело: {"rates": {"EUR": 0.93, ...}})
	Timeout     time.Duration // Таймаут исходящего запроса
	Currency    string        // Целевая валюта для отображения цен (EUR)
	CacheKey    string        // Ключ слота кеша в Redis
	CacheTTL    time.Duration // Время жизни закешированного курса
	DefaultRate float64       // Курс по умолчанию при недоступности API
}

// PriceConfig - настройки уведомлений об изменении цены
type PriceConfig struct {
	NotificationEmail string // Адрес получателя уведомлений
}

// UploadConfig - настройки загрузки изображений товаров
type UploadConfig struct {
	Dir             string // Директория для хранения загруженных файлов
	MaxSizeBytes    int64  // Максимальный размер файла
	PlaceholderPath string // Путь заглушки для товаров без изображения
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	defaultRate, err := strconv.ParseFloat(getEnv("EXCHANGE_DEFAULT_RATE", "0.85"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid EXCHANGE_DEFAULT_RATE value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "catalog_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "price_change_events"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			AccessTokenTTL: time.Duration(getEnvInt("JWT_ACCESS_TTL_MINUTES", 60)) * time.Minute,
		},
		ExchangeAPI: ExchangeAPIConfig{
			// Бесплатный API, ключ не требуется
			URL:         getEnv("EXCHANGE_API_URL", "https://open.er-api.com/v6/latest/USD"),
			Timeout:     time.Duration(getEnvInt("EXCHANGE_API_TIMEOUT_SECONDS", 5)) * time.Second,
			Currency:    getEnv("EXCHANGE_CURRENCY", "EUR"),
			CacheKey:    getEnv("EXCHANGE_CACHE_KEY", "rates:EUR"),
			CacheTTL:    time.Duration(getEnvInt("EXCHANGE_CACHE_TTL_MINUTES", 60)) * time.Minute,
			DefaultRate: defaultRate,
		},
		Price: PriceConfig{
			NotificationEmail: getEnv("PRICE_NOTIFICATION_EMAIL", "admin@example.com"),
		},
		Upload: UploadConfig{
			Dir:             getEnv("UPLOAD_DIR", "./storage/uploads"),
			MaxSizeBytes:    int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 5)) * 1024 * 1024,
			PlaceholderPath: getEnv("UPLOAD_PLACEHOLDER", "product-placeholder.jpg"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// PgxURL возвращает строку подключения для pgx pool
func (c *DatabaseConfig) PgxURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
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
