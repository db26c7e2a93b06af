package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
)

// ExchangeRateAPIClientImpl реализует интерфейс ExchangeRateAPIClient
type ExchangeRateAPIClientImpl struct {
	apiURL     string
	httpClient *http.Client
}

// NewExchangeRateAPIClient создает новый HTTP клиент для API курсов валют
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

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected API status: %d", resp.StatusCode)
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
