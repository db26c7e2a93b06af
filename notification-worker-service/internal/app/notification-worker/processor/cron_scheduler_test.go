package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRateRefresher мок для RateRefresherInterface
type MockRateRefresher struct {
	mock.Mock
}

func (m *MockRateRefresher) RefreshRates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===================== CronScheduler Tests =====================

func TestCronScheduler_Start_PerformsInitialRefresh(t *testing.T) {
	// Arrange
	refresher := new(MockRateRefresher)
	refresher.On("RefreshRates", mock.Anything).Return(nil)

	scheduler := NewCronScheduler(refresher)

	// Act
	err := scheduler.Start(context.Background(), "*/30 * * * *")
	defer scheduler.Stop()

	// Assert
	assert.NoError(t, err)
	// Прогрев выполняется сразу, не дожидаясь первого срабатывания
	refresher.AssertNumberOfCalls(t, "RefreshRates", 1)
	assert.Len(t, scheduler.GetEntries(), 1)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	// Arrange
	refresher := new(MockRateRefresher)
	scheduler := NewCronScheduler(refresher)

	// Act
	err := scheduler.Start(context.Background(), "not a schedule")

	// Assert
	assert.Error(t, err)
	refresher.AssertNotCalled(t, "RefreshRates", mock.Anything)
}

func TestCronScheduler_Start_InitialRefreshErrorIsNotFatal(t *testing.T) {
	// Arrange
	refresher := new(MockRateRefresher)
	refresher.On("RefreshRates", mock.Anything).Return(errors.New("connection refused"))

	scheduler := NewCronScheduler(refresher)

	// Act
	err := scheduler.Start(context.Background(), "*/30 * * * *")
	defer scheduler.Stop()

	// Assert
	// Неудачный первичный прогрев не мешает запуску: cron повторит позже
	assert.NoError(t, err)
}
