package mocks

import (
	"context"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockNotificationLogRepository мок для NotificationLogRepository
type MockNotificationLogRepository struct {
	mock.Mock
}

func (m *MockNotificationLogRepository) Create(ctx context.Context, record *entity.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockNotificationLogRepository) GetByProductID(ctx context.Context, productID string) ([]entity.NotificationRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.NotificationRecord), args.Error(1)
}

// MockRateCacheRepository мок для RateCacheRepository
type MockRateCacheRepository struct {
	mock.Mock
}

func (m *MockRateCacheRepository) Get(ctx context.Context) (*entity.CachedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CachedRate), args.Error(1)
}

func (m *MockRateCacheRepository) Set(ctx context.Context, rate *entity.CachedRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockMailer мок для отправки писем
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

// MockExchangeRateAPIClient мок для клиента внешнего API курсов
type MockExchangeRateAPIClient struct {
	mock.Mock
}

func (m *MockExchangeRateAPIClient) FetchRates(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}
