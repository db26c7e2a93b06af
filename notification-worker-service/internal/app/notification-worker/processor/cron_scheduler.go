package processor

import (
	"context"

	"maplemarket/notification-worker-service/internal/app/notification-worker/service"
	"maplemarket/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически прогревает кеш курса валют
type CronScheduler struct {
	cron      *cron.Cron
	refresher service.RateRefresherInterface
}

func NewCronScheduler(refresher service.RateRefresherInterface) *CronScheduler {
	return &CronScheduler{
		cron:      cron.New(),
		refresher: refresher,
	}
}

// Start регистрирует задачу по расписанию и выполняет первичный прогрев
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: refreshing exchange rate cache")

		if err := s.refresher.RefreshRates(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh exchange rate cache")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Первичный прогрев, чтобы каталог не ждал первого срабатывания cron
	if err := s.refresher.RefreshRates(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial exchange rate refresh failed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
