package util

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"maplemarket/pkg/metrics"
)

// KafkaProducer обертка над Kafka writer для отправки событий
// Используется для отправки событий PRICE_CHANGED в топик price_change_events
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров Kafka в формате ["host:port"]
// topic - имя топика для событий об изменении цены
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Уведомление должно уйти в рамках запроса, поэтому батч минимальный
		BatchSize:    1,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaProducer{writer: writer}
}

// PublishMessage отправляет сообщение в Kafka
// key - используется для партиционирования (ProductID, сохраняет порядок
// событий одного товара)
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced("catalog-service", p.writer.Topic)

	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
