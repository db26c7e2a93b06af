package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
	"maplemarket/notification-worker-service/internal/app/notification-worker/repository"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"
)

// Тема письма об изменении цены
const priceChangeSubject = "Product Price Change Notification"

// Шаблон тела письма
var priceChangeTemplate = template.Must(template.New("price_change").Parse(`
<html>
<body>
  <h2>Product Price Change Notification</h2>
  <p>The price of the following product has changed:</p>
  <table>
    <tr><td>Product</td><td>{{.ProductName}}</td></tr>
    <tr><td>Old price</td><td>{{printf "%.2f" .OldPrice}}</td></tr>
    <tr><td>New price</td><td>{{printf "%.2f" .NewPrice}}</td></tr>
  </table>
  <p>Changed at: {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}</p>
</body>
</html>
`))

// NotificationService отправляет письма об изменении цены и ведет журнал
// Ошибка отправки возвращается наружу: consumer не закоммитит offset
// и событие будет обработано повторно
type NotificationService struct {
	mailer  Mailer
	logRepo repository.NotificationLogRepository
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(mailer Mailer, logRepo repository.NotificationLogRepository) *NotificationService {
	return &NotificationService{
		mailer:  mailer,
		logRepo: logRepo,
	}
}

// HandlePriceChangeEvent отправляет письмо по событию PRICE_CHANGED
func (s *NotificationService) HandlePriceChangeEvent(ctx context.Context, event *entity.PriceChangeEvent) error {
	if event.EventType != entity.EventTypePriceChanged {
		// Неизвестные типы пропускаем без повторной обработки
		logger.Warn().Str("event_type", event.EventType).Msg("Skipping unknown event type")
		return nil
	}

	if event.Email == "" {
		logger.Warn().Str("product_id", event.ProductID.String()).Msg("Price change event without recipient, skipping")
		return nil
	}

	body, err := renderPriceChangeBody(event)
	if err != nil {
		return fmt.Errorf("failed to render notification body: %w", err)
	}

	sendErr := s.mailer.Send(event.Email, priceChangeSubject, body)

	// Журнал ведется best-effort и не влияет на результат обработки
	s.audit(ctx, event, sendErr)

	if sendErr != nil {
		logger.Error().
			Err(sendErr).
			Str("product_id", event.ProductID.String()).
			Str("recipient", event.Email).
			Msg("Failed to send price change email")
		metrics.RecordNotificationEmail("failed")
		return sendErr
	}

	logger.Info().
		Str("product_id", event.ProductID.String()).
		Str("recipient", event.Email).
		Float64("old_price", event.OldPrice).
		Float64("new_price", event.NewPrice).
		Msg("Price change email sent")
	metrics.RecordNotificationEmail("sent")

	return nil
}

// audit записывает результат отправки в MongoDB
func (s *NotificationService) audit(ctx context.Context, event *entity.PriceChangeEvent, sendErr error) {
	record := &entity.NotificationRecord{
		ProductID:   event.ProductID.String(),
		ProductName: event.ProductName,
		OldPrice:    event.OldPrice,
		NewPrice:    event.NewPrice,
		Recipient:   event.Email,
		Subject:     priceChangeSubject,
		Status:      entity.NotificationStatusSent,
		SentAt:      time.Now(),
	}
	if sendErr != nil {
		record.Status = entity.NotificationStatusFailed
		record.Error = sendErr.Error()
	}

	if err := s.logRepo.Create(ctx, record); err != nil {
		logger.Warn().Err(err).Str("product_id", record.ProductID).Msg("Failed to write notification audit record")
	}
}

func renderPriceChangeBody(event *entity.PriceChangeEvent) (string, error) {
	var buf bytes.Buffer
	if err := priceChangeTemplate.Execute(&buf, event); err != nil {
		return "", err
	}
	return buf.String(), nil
}
