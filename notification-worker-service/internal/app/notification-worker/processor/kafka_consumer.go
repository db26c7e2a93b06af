package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
	"maplemarket/notification-worker-service/internal/app/notification-worker/service"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "notification-worker"

// KafkaConsumer обрабатывает события из Kafka топика price_change_events
// Offset коммитится только после успешной обработки: доставка писем
// выполняется в семантике at-least-once
type KafkaConsumer struct {
	reader          *kafka.Reader
	notificationSvc service.NotificationServiceInterface
	stopChan        chan struct{}
	doneChan        chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	notificationSvc service.NotificationServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.FirstOffset, // Не пропускаем события, накопившиеся до старта
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:          reader,
		notificationSvc: notificationSvc,
		stopChan:        make(chan struct{}),
		doneChan:        make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Msg("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Msg("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	topic := c.reader.Config().Topic
	group := c.reader.Config().GroupID

	for {
		select {
		case <-c.stopChan:
			return
		default:
			// Читаем сообщение с таймаутом
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				// Если контекст был отменен, выходим
				if ctx.Err() != nil {
					return
				}

				if readCtx.Err() != nil {
					// Таймаут чтения при пустом топике не является ошибкой
					continue
				}

				logger.Error().Err(err).Msg("Error fetching message")
				metrics.RecordKafkaError(serviceName, topic, "consume")
				time.Sleep(time.Second)
				continue
			}

			start := time.Now()
			if err := c.processMessage(ctx, message); err != nil {
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error processing message")
				// Не коммитим offset при ошибке - сообщение будет повторно обработано
				continue
			}

			metrics.RecordKafkaMessageConsumed(serviceName, topic, group, time.Since(start))

			// Коммитим offset после успешной обработки
			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().Err(err).Msg("Error committing message")
				metrics.RecordKafkaError(serviceName, topic, "commit")
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.PriceChangeEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		// Битое сообщение никогда не распарсится, повторять его бессмысленно
		logger.Error().
			Err(err).
			Int64("offset", message.Offset).
			Msg("Skipping malformed message")
		return nil
	}

	logger.Info().
		Str("event_type", event.EventType).
		Str("product_id", event.ProductID.String()).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received price change event")

	if err := c.notificationSvc.HandlePriceChangeEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to handle price change event: %w", err)
	}

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
