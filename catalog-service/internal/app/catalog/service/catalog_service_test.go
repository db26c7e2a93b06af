package service

import (
	"context"
	"errors"
	"testing"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/repository"
	"maplemarket/catalog-service/internal/app/catalog/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockNotifier фиксирует вызовы NotifyChangeInPrice
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyChangeInPrice(ctx context.Context, product *entity.Product, oldPrice, newPrice float64) bool {
	args := m.Called(ctx, product, oldPrice, newPrice)
	return args.Bool(0)
}

func floatPtr(v float64) *float64 { return &v }

// ==================== CreateProduct Tests ====================

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	service := NewCatalogService(productRepo, notifier)

	req := &entity.CreateProductRequest{
		Name:        "Laptop",
		Description: "High-performance laptop",
		Price:       1299.99,
	}

	// Act
	product, err := service.CreateProduct(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, 1299.99, product.Price)
	// Создание товара уведомлений не порождает
	notifier.AssertNotCalled(t, "NotifyChangeInPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	productRepo.AssertExpectations(t)
}

// ==================== UpdateProduct Tests ====================

func TestCatalogService_UpdateProduct_PriceChanged_NotifiesOnce(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	existing := &entity.Product{ID: uuid.New(), Name: "Laptop", Price: 100.00}

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	notifier.On("NotifyChangeInPrice", ctx, mock.AnythingOfType("*entity.Product"), 100.00, 150.00).Return(true)

	service := NewCatalogService(productRepo, notifier)

	// Act
	outcome, err := service.UpdateProduct(ctx, existing.ID, &entity.UpdateProductRequest{
		Price: floatPtr(150.00),
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, outcome.PriceChanged)
	assert.True(t, outcome.NotificationQueued)
	assert.Equal(t, 150.00, outcome.Product.Price)
	notifier.AssertNumberOfCalls(t, "NotifyChangeInPrice", 1)
}

func TestCatalogService_UpdateProduct_SamePrice_NoNotification(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	existing := &entity.Product{ID: uuid.New(), Name: "Laptop", Price: 50.00}

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	service := NewCatalogService(productRepo, notifier)

	// Act
	outcome, err := service.UpdateProduct(ctx, existing.ID, &entity.UpdateProductRequest{
		Price: floatPtr(50.00),
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, outcome.PriceChanged)
	notifier.AssertNotCalled(t, "NotifyChangeInPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_UpdateProduct_NameOnly_NoNotification(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	existing := &entity.Product{ID: uuid.New(), Name: "Laptop", Price: 100.00}

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	service := NewCatalogService(productRepo, notifier)

	// Act
	// Цена в запросе отсутствует - изменение только имени
	outcome, err := service.UpdateProduct(ctx, existing.ID, &entity.UpdateProductRequest{
		Name: "Gaming Laptop",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Gaming Laptop", outcome.Product.Name)
	assert.Equal(t, 100.00, outcome.Product.Price)
	assert.False(t, outcome.PriceChanged)
	notifier.AssertNotCalled(t, "NotifyChangeInPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_UpdateProduct_NotificationFailed_UpdateStillSucceeds(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	existing := &entity.Product{ID: uuid.New(), Name: "Laptop", Price: 100.00}

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	notifier.On("NotifyChangeInPrice", ctx, mock.AnythingOfType("*entity.Product"), 100.00, 200.00).Return(false)

	service := NewCatalogService(productRepo, notifier)

	// Act
	outcome, err := service.UpdateProduct(ctx, existing.ID, &entity.UpdateProductRequest{
		Price: floatPtr(200.00),
	})

	// Assert
	// Обновление не откатывается из-за проблем с очередью
	require.NoError(t, err)
	assert.True(t, outcome.PriceChanged)
	assert.False(t, outcome.NotificationQueued)
	assert.Equal(t, 200.00, outcome.Product.Price)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	id := uuid.New()
	productRepo.On("GetByID", ctx, id).Return(nil, repository.ErrProductNotFound)

	service := NewCatalogService(productRepo, notifier)

	// Act
	outcome, err := service.UpdateProduct(ctx, id, &entity.UpdateProductRequest{Price: floatPtr(10)})

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, outcome)
}

func TestCatalogService_UpdateProduct_RepoError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	existing := &entity.Product{ID: uuid.New(), Name: "Laptop", Price: 100.00}

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(errors.New("db: connection lost"))

	service := NewCatalogService(productRepo, notifier)

	// Act
	_, err := service.UpdateProduct(ctx, existing.ID, &entity.UpdateProductRequest{Price: floatPtr(200)})

	// Assert
	require.Error(t, err)
	// Сохранение не удалось - уведомление не отправляется
	notifier.AssertNotCalled(t, "NotifyChangeInPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ==================== DeleteProduct Tests ====================

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	id := uuid.New()
	productRepo.On("Delete", ctx, id).Return(repository.ErrProductNotFound)

	service := NewCatalogService(productRepo, notifier)

	// Act
	err := service.DeleteProduct(ctx, id)

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ==================== SetProductImage Tests ====================

func TestCatalogService_SetProductImage_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mockNotifier)

	existing := &entity.Product{ID: uuid.New(), Name: "Laptop", Price: 100.00}

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	service := NewCatalogService(productRepo, notifier)

	// Act
	product, err := service.SetProductImage(ctx, existing.ID, "uploads/abc.png")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "uploads/abc.png", product.Image)
}
