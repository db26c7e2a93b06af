package repository

import (
	"context"

	"maplemarket/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

// ProductRepository определяет интерфейс для работы с товарами в PostgreSQL
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository определяет интерфейс для работы с администраторами
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// RateCacheRepository определяет интерфейс слота кеша курса валют
// Get возвращает ErrRateNotCached, если значения нет или TTL истек
type RateCacheRepository interface {
	Get(ctx context.Context) (*entity.CachedRate, error)
	Set(ctx context.Context, rate *entity.CachedRate) error
}
