package service

import (
	"context"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
)

// Mailer определяет интерфейс отправки писем
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NotificationServiceInterface обрабатывает события изменения цены
type NotificationServiceInterface interface {
	HandlePriceChangeEvent(ctx context.Context, event *entity.PriceChangeEvent) error
}

// RateRefresherInterface прогревает кеш курса валют
type RateRefresherInterface interface {
	RefreshRates(ctx context.Context) error
}

// ExchangeRateAPIClient определяет интерфейс клиента внешнего API курсов
type ExchangeRateAPIClient interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}
