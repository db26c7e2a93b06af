package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/entity"
)

// ErrUnexpectedStatus возвращается, когда API ответил не-2xx статусом
// Отличается от транспортной ошибки, чтобы вызывающий код мог выбрать
// уровень логирования
var ErrUnexpectedStatus = errors.New("unexpected API status")

// ExchangeRateAPIClientImpl реализует интерфейс ExchangeRateAPIClient
// Отвечает только за HTTP запросы к внешнему API
type ExchangeRateAPIClientImpl struct {
	apiURL     string
	httpClient *http.Client
}

// NewExchangeRateAPIClient создает новый HTTP клиент для API курсов валют
// timeout ограничивает весь исходящий запрос
func NewExchangeRateAPIClient(apiURL string, timeout time.Duration) *ExchangeRateAPIClientImpl {
	return &ExchangeRateAPIClientImpl{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRates получает курсы валют из внешнего API
func (c *ExchangeRateAPIClientImpl) FetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResponse entity.ExchangeRatesResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal API response: %w", err)
	}

	return apiResponse.Rates, nil
}
