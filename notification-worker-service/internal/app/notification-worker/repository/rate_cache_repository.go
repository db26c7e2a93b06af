package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateNotCached = errors.New("exchange rate not cached")
)

// rateCacheRepository пишет курс в тот же слот Redis, который читает каталог
// Формат значения и ключ должны совпадать с каталогом
type rateCacheRepository struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRateCacheRepository создает новый репозиторий кеша курса
func NewRateCacheRepository(client *redis.Client, key string, ttl time.Duration) RateCacheRepository {
	return &rateCacheRepository{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Get получает закешированный курс
func (r *rateCacheRepository) Get(ctx context.Context) (*entity.CachedRate, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRateNotCached
		}
		return nil, fmt.Errorf("failed to get rate from redis: %w", err)
	}

	var rate entity.CachedRate
	if err := json.Unmarshal([]byte(data), &rate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached rate: %w", err)
	}

	return &rate, nil
}

// Set сохраняет курс в слот кеша с настроенным TTL
func (r *rateCacheRepository) Set(ctx context.Context, rate *entity.CachedRate) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal cached rate: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set rate in redis: %w", err)
	}

	return nil
}
