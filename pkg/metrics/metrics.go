package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Метрики кеша курса валют
// =============================================================================

// RateCacheHits - попадания в кеш курса
var RateCacheHits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "exchange_rate_cache_hits_total",
		Help: "Total number of exchange rate cache hits",
	},
)

// RateCacheMisses - промахи кеша курса (каждый промах - исходящий HTTP запрос)
var RateCacheMisses = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "exchange_rate_cache_misses_total",
		Help: "Total number of exchange rate cache misses",
	},
)

// RateFetchFailures - неудачные запросы к внешнему API курсов
// Labels: reason (transport, status, missing_field)
var RateFetchFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exchange_rate_fetch_failures_total",
		Help: "Total number of failed exchange rate fetches",
	},
	[]string{"reason"},
)

// =============================================================================
// Метрики уведомлений об изменении цены
// =============================================================================

// PriceChangeNotifications - события изменения цены, переданные в очередь
// Labels: status (published, failed, skipped)
var PriceChangeNotifications = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "price_change_notifications_total",
		Help: "Total number of price change notification hand-offs",
	},
	[]string{"status"},
)

// NotificationEmails - отправленные worker-ом письма
// Labels: status (sent, failed)
var NotificationEmails = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_emails_total",
		Help: "Total number of price change notification emails",
	},
	[]string{"status"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaConsumeDuration - время обработки одного сообщения worker-ом
var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
// Labels: operation (produce, consume, commit)
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Auth Метрики
// =============================================================================

// AuthLogins - попытки входа администраторов
// Labels: status (success, failed)
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"},
)
