package repository

import (
	"context"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
)

// NotificationLogRepository определяет интерфейс журнала уведомлений в MongoDB
type NotificationLogRepository interface {
	Create(ctx context.Context, record *entity.NotificationRecord) error
	GetByProductID(ctx context.Context, productID string) ([]entity.NotificationRecord, error)
}

// RateCacheRepository определяет интерфейс слота кеша курса в Redis
// Worker записывает курс, каталог его читает
type RateCacheRepository interface {
	Get(ctx context.Context) (*entity.CachedRate, error)
	Set(ctx context.Context, rate *entity.CachedRate) error
}
