package service

import (
	"context"
	"errors"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/repository"
	"maplemarket/pkg/logger"
	"maplemarket/pkg/metrics"
)

// ExchangeRateService возвращает курс конвертации для отображения цен
// Курс кешируется в Redis с TTL; при любой ошибке возвращается курс
// по умолчанию, ошибка никогда не поднимается к вызывающему коду -
// цена на витрине не должна ломать рендер страницы
type ExchangeRateService struct {
	rateCache   repository.RateCacheRepository
	apiClient   ExchangeRateAPIClient
	currency    string
	defaultRate float64
}

// NewExchangeRateService создает новый сервис курса валют
func NewExchangeRateService(
	rateCache repository.RateCacheRepository,
	apiClient ExchangeRateAPIClient,
	currency string,
	defaultRate float64,
) *ExchangeRateService {
	return &ExchangeRateService{
		rateCache:   rateCache,
		apiClient:   apiClient,
		currency:    currency,
		defaultRate: defaultRate,
	}
}

// GetRate возвращает курс конвертации
// Порядок: кеш -> внешний API (с записью в кеш) -> курс по умолчанию
// Неуспешный запрос к API кеш не заполняет, следующий вызов повторит сеть
func (s *ExchangeRateService) GetRate(ctx context.Context) float64 {
	cached, err := s.rateCache.Get(ctx)
	if err == nil {
		metrics.RecordRateCacheHit()
		return cached.Rate
	}

	if !errors.Is(err, repository.ErrRateNotCached) {
		// Недоступный Redis эквивалентен промаху: идем в API
		logger.Warn().Err(err).Msg("Rate cache unavailable, falling back to API")
	}
	metrics.RecordRateCacheMiss()

	rates, err := s.apiClient.FetchRates(ctx)
	if err != nil {
		if errors.Is(err, ErrUnexpectedStatus) {
			logger.Debug().Err(err).Msg("Error fetching exchange rate")
			metrics.RecordRateFetchFailure("status")
		} else {
			logger.Error().Err(err).Msg("Error fetching exchange rate")
			metrics.RecordRateFetchFailure("transport")
		}
		return s.defaultRate
	}

	rate, ok := rates[s.currency]
	if !ok {
		logger.Debug().Str("currency", s.currency).Msg("Exchange rate response missing currency")
		metrics.RecordRateFetchFailure("missing_field")
		return s.defaultRate
	}

	if err := s.rateCache.Set(ctx, &entity.CachedRate{Rate: rate, UpdatedAt: time.Now()}); err != nil {
		// Курс получен, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache exchange rate")
	}

	return rate
}
