package util

import "context"

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Notifier зависит только от этого узкого контракта постановки в очередь
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
