package metrics

import "time"

// RecordRateCacheHit фиксирует попадание в кеш курса валют
func RecordRateCacheHit() {
	RateCacheHits.Inc()
}

// RecordRateCacheMiss фиксирует промах кеша курса валют
func RecordRateCacheMiss() {
	RateCacheMisses.Inc()
}

// RecordRateFetchFailure фиксирует неудачный запрос к внешнему API курсов
// reason: transport, status, missing_field
func RecordRateFetchFailure(reason string) {
	RateFetchFailures.WithLabelValues(reason).Inc()
}

// RecordPriceChangeNotification фиксирует результат передачи уведомления в очередь
// status: published, failed, skipped
func RecordPriceChangeNotification(status string) {
	PriceChangeNotifications.WithLabelValues(status).Inc()
}

// RecordNotificationEmail фиксирует результат отправки письма
// status: sent, failed
func RecordNotificationEmail(status string) {
	NotificationEmails.WithLabelValues(status).Inc()
}

// RecordKafkaMessageProduced фиксирует успешную отправку сообщения в Kafka
func RecordKafkaMessageProduced(service, topic string) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
}

// RecordKafkaMessageConsumed фиксирует обработанное сообщение из Kafka
func RecordKafkaMessageConsumed(service, topic, group string, processingDuration time.Duration) {
	KafkaMessagesConsumed.WithLabelValues(service, topic, group).Inc()
	KafkaConsumeDuration.WithLabelValues(service, topic).Observe(processingDuration.Seconds())
}

// RecordKafkaError фиксирует ошибку Kafka
// operation: produce, consume, commit
func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

// RecordAuthLogin фиксирует попытку входа
// status: success, failed
func RecordAuthLogin(status string) {
	AuthLogins.WithLabelValues(status).Inc()
}
