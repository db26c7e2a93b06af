package service

import (
	"context"
	"fmt"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
	"maplemarket/notification-worker-service/internal/app/notification-worker/repository"
	"maplemarket/pkg/logger"
)

// RateRefresherService прогревает кеш курса валют по расписанию
// Каталог при попадании в кеш не ходит во внешний API, так что прогрев
// убирает сетевые запросы с пользовательского пути
type RateRefresherService struct {
	rateCache repository.RateCacheRepository
	apiClient ExchangeRateAPIClient
	currency  string
}

// NewRateRefresherService создает новый сервис прогрева кеша
func NewRateRefresherService(
	rateCache repository.RateCacheRepository,
	apiClient ExchangeRateAPIClient,
	currency string,
) *RateRefresherService {
	return &RateRefresherService{
		rateCache: rateCache,
		apiClient: apiClient,
		currency:  currency,
	}
}

// RefreshRates получает актуальный курс и записывает его в кеш
// При ошибке кеш не трогается: каталог продолжит работать со старым
// значением до истечения TTL или с курсом по умолчанию
func (s *RateRefresherService) RefreshRates(ctx context.Context) error {
	rates, err := s.apiClient.FetchRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rates: %w", err)
	}

	rate, ok := rates[s.currency]
	if !ok {
		return fmt.Errorf("rates response missing currency %s", s.currency)
	}

	if err := s.rateCache.Set(ctx, &entity.CachedRate{Rate: rate, UpdatedAt: time.Now()}); err != nil {
		return fmt.Errorf("failed to store rate: %w", err)
	}

	logger.Info().Str("currency", s.currency).Float64("rate", rate).Msg("Exchange rate cache refreshed")

	return nil
}
