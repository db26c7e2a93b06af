package repository

import (
	"context"
	"testing"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testCacheKey = "rates:EUR"

// RateCacheRepositoryTestSuite тестовый suite для Redis repository
type RateCacheRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      RateCacheRepository
}

func TestRateCacheRepositorySuite(t *testing.T) {
	suite.Run(t, new(RateCacheRepositoryTestSuite))
}

func (s *RateCacheRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRateCacheRepository(s.client, testCacheKey, time.Hour)
}

func (s *RateCacheRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RateCacheRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== Set Tests =====================

func (s *RateCacheRepositoryTestSuite) TestSet_WritesSlotWithTTL() {
	ctx := context.Background()

	// Act
	err := s.repo.Set(ctx, &entity.CachedRate{Rate: 0.93, UpdatedAt: time.Now()})

	// Assert
	s.NoError(err)
	s.Equal(time.Hour, s.miniRedis.TTL(testCacheKey))

	// Значение в слоте читается обратно
	result, err := s.repo.Get(ctx)
	s.NoError(err)
	s.Equal(0.93, result.Rate)
}

// ===================== Get Tests =====================

func (s *RateCacheRepositoryTestSuite) TestGet_EmptySlot() {
	ctx := context.Background()

	// Act
	result, err := s.repo.Get(ctx)

	// Assert
	s.ErrorIs(err, ErrRateNotCached)
	s.Nil(result)
}
