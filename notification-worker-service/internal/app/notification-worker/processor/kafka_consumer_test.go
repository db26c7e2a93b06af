package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationService мок для NotificationServiceInterface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) HandlePriceChangeEvent(ctx context.Context, event *entity.PriceChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestMessage(t *testing.T, event *entity.PriceChangeEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafka.Message{
		Topic:     "price_change_events",
		Partition: 0,
		Offset:    42,
		Key:       []byte(event.ProductID.String()),
		Value:     value,
	}
}

// ===================== NewKafkaConsumer Tests =====================

func TestNewKafkaConsumer(t *testing.T) {
	// Arrange
	notificationSvc := new(MockNotificationService)

	// Act
	consumer := NewKafkaConsumer(
		[]string{"localhost:9092"},
		"price_change_events",
		"test-group",
		1, 10e6,
		notificationSvc,
	)

	// Assert
	assert.NotNil(t, consumer)
	assert.NotNil(t, consumer.reader)
	assert.NotNil(t, consumer.notificationSvc)
	assert.NotNil(t, consumer.stopChan)
	assert.NotNil(t, consumer.doneChan)

	// Cleanup
	consumer.reader.Close()
}

// ===================== processMessage Tests =====================

func TestKafkaConsumer_ProcessMessage_Success(t *testing.T) {
	// Arrange
	notificationSvc := new(MockNotificationService)
	consumer := &KafkaConsumer{notificationSvc: notificationSvc}

	event := &entity.PriceChangeEvent{
		EventType:   entity.EventTypePriceChanged,
		ProductID:   uuid.New(),
		ProductName: "Laptop",
		OldPrice:    100.00,
		NewPrice:    150.00,
		Email:       "admin@example.com",
		Timestamp:   time.Now(),
	}

	notificationSvc.On("HandlePriceChangeEvent", mock.Anything, mock.MatchedBy(func(e *entity.PriceChangeEvent) bool {
		return e.ProductID == event.ProductID && e.NewPrice == 150.00
	})).Return(nil)

	// Act
	err := consumer.processMessage(context.Background(), newTestMessage(t, event))

	// Assert
	assert.NoError(t, err)
	notificationSvc.AssertExpectations(t)
}

func TestKafkaConsumer_ProcessMessage_HandlerError(t *testing.T) {
	// Arrange
	notificationSvc := new(MockNotificationService)
	consumer := &KafkaConsumer{notificationSvc: notificationSvc}

	event := &entity.PriceChangeEvent{
		EventType: entity.EventTypePriceChanged,
		ProductID: uuid.New(),
		Email:     "admin@example.com",
	}

	notificationSvc.On("HandlePriceChangeEvent", mock.Anything, mock.AnythingOfType("*entity.PriceChangeEvent")).
		Return(errors.New("smtp: connection refused"))

	// Act
	err := consumer.processMessage(context.Background(), newTestMessage(t, event))

	// Assert
	// Ошибка обработки возвращается наружу - offset не будет закоммичен
	assert.Error(t, err)
}

func TestKafkaConsumer_ProcessMessage_MalformedJSON(t *testing.T) {
	// Arrange
	notificationSvc := new(MockNotificationService)
	consumer := &KafkaConsumer{notificationSvc: notificationSvc}

	message := kafka.Message{
		Topic: "price_change_events",
		Value: []byte("not a json"),
	}

	// Act
	err := consumer.processMessage(context.Background(), message)

	// Assert
	// Битое сообщение пропускается, чтобы не застрять на нем навсегда
	assert.NoError(t, err)
	notificationSvc.AssertNotCalled(t, "HandlePriceChangeEvent", mock.Anything, mock.Anything)
}
