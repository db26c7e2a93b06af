package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/repository"

	"github.com/google/uuid"
)

// UpdateOutcome описывает результат обновления товара
// NotificationQueued имеет смысл только при PriceChanged = true
type UpdateOutcome struct {
	Product            *entity.Product
	PriceChanged       bool
	NotificationQueued bool
}

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует репозиторий товаров и сервис уведомлений о смене цены
type CatalogService struct {
	productRepo repository.ProductRepository
	priceSvc    PriceChangeNotifierInterface
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	productRepo repository.ProductRepository,
	priceSvc PriceChangeNotifierInterface,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		priceSvc:    priceSvc,
	}
}

// CreateProduct создает новый товар с уникальным ID
// При создании уведомление не отправляется
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price, // Цена в базовой валюте (USD)
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct получает товар по ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetAllProducts получает все товары
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет товар и при изменении цены передает уведомление
// Неудачная постановка уведомления операцию не откатывает: товар уже
// сохранен, вызывающий код решает, как показать предупреждение
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*UpdateOutcome, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Запоминаем старую цену для детекции изменения
	oldPrice := product.Price

	// Частичное обновление: пустые поля не изменяются
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	outcome := &UpdateOutcome{Product: product}

	// Точное сравнение цен, сохранено поведение исходной системы
	if product.Price != oldPrice {
		outcome.PriceChanged = true
		outcome.NotificationQueued = s.priceSvc.NotifyChangeInPrice(ctx, product, oldPrice, product.Price)
	}

	return outcome, nil
}

// DeleteProduct удаляет товар
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// SetProductImage сохраняет путь загруженного изображения у товара
func (s *CatalogService) SetProductImage(ctx context.Context, id uuid.UUID, imagePath string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.Image = imagePath

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}

	return product, nil
}
