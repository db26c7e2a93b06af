package service

import (
	"context"
	"encoding/json"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/util"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"
)

// PriceChangeService отвечает за передачу уведомлений об изменении цены
// Сам сервис письма не отправляет и сеть не трогает - только ставит
// событие в очередь, отправкой занимается notification worker
type PriceChangeService struct {
	publisher         util.MessagePublisher
	notificationEmail string
}

// NewPriceChangeService создает новый сервис уведомлений о смене цены
func NewPriceChangeService(publisher util.MessagePublisher, notificationEmail string) *PriceChangeService {
	return &PriceChangeService{
		publisher:         publisher,
		notificationEmail: notificationEmail,
	}
}

// NotifyChangeInPrice ставит уведомление об изменении цены в очередь
// Возвращает true при успешной постановке, false если цена не изменилась
// или постановка не удалась. Сравнение цен точное, без допуска
func (s *PriceChangeService) NotifyChangeInPrice(ctx context.Context, product *entity.Product, oldPrice, newPrice float64) bool {
	if oldPrice == newPrice {
		metrics.RecordPriceChangeNotification("skipped")
		return false
	}

	event := entity.PriceChangeEvent{
		EventType:   entity.EventTypePriceChanged,
		ProductID:   product.ID,
		ProductName: product.Name,
		OldPrice:    oldPrice,
		NewPrice:    newPrice,
		Email:       s.notificationEmail,
		Timestamp:   time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal price change event")
		metrics.RecordPriceChangeNotification("failed")
		return false
	}

	// Ключ = ProductID, события одного товара попадают в одну партицию
	if err := s.publisher.PublishMessage(ctx, event.ProductID.String(), data); err != nil {
		logger.Error().
			Err(err).
			Str("product_id", event.ProductID.String()).
			Msg("Failed to dispatch price change notification")
		metrics.RecordPriceChangeNotification("failed")
		return false
	}

	logger.Info().
		Str("product_id", event.ProductID.String()).
		Float64("old_price", oldPrice).
		Float64("new_price", newPrice).
		Msg("Price change notification dispatched")
	metrics.RecordPriceChangeNotification("published")

	return true
}
