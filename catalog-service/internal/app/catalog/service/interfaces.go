package service

import (
	"context"
	"mime/multipart"

	"maplemarket/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

// CatalogServiceInterface определяет интерфейс для работы с каталогом товаров
type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	// UpdateProduct выполняет частичное обновление и при изменении цены
	// передает уведомление в очередь
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*UpdateOutcome, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetProductImage(ctx context.Context, id uuid.UUID, imagePath string) (*entity.Product, error)
}

// ExchangeRateServiceInterface определяет чтение курса валют через кеш
type ExchangeRateServiceInterface interface {
	// GetRate всегда возвращает значение: из кеша, из API или курс по умолчанию
	GetRate(ctx context.Context) float64
}

// PriceChangeNotifierInterface определяет передачу уведомления об изменении цены
type PriceChangeNotifierInterface interface {
	// NotifyChangeInPrice возвращает true, если уведомление поставлено в очередь
	NotifyChangeInPrice(ctx context.Context, product *entity.Product, oldPrice, newPrice float64) bool
}

// AuthServiceInterface определяет аутентификацию администраторов
type AuthServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// ExchangeRateAPIClient определяет интерфейс для взаимодействия
// с внешним API курсов валют
type ExchangeRateAPIClient interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// ImageServiceInterface определяет сохранение изображений товаров
type ImageServiceInterface interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
}
