package handler

import (
	"errors"
	"net/http"

	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CatalogHandler обрабатывает HTTP запросы каталога
// Публичные эндпоинты отдают цены вместе с конвертацией по текущему курсу
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	rateService    service.ExchangeRateServiceInterface
	imageService   service.ImageServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(
	catalogService service.CatalogServiceInterface,
	rateService service.ExchangeRateServiceInterface,
	imageService service.ImageServiceInterface,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		rateService:    rateService,
		imageService:   imageService,
		validator:      validator.New(),
	}
}

// === PUBLIC HANDLERS ===

// GetAllProducts обрабатывает GET /products
// Каждый товар дополняется ценой в целевой валюте
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get products")
		return
	}

	// Один запрос курса на весь список
	rate := h.rateService.GetRate(c.Request.Context())

	views := make([]entity.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, entity.ProductView{
			Product:        p,
			PriceConverted: p.Price * rate,
			ExchangeRate:   rate,
		})
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: views,
		Total:    len(views),
	})
}

// GetProduct обрабатывает GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	rate := h.rateService.GetRate(c.Request.Context())

	c.JSON(http.StatusOK, entity.ProductView{
		Product:        *product,
		PriceConverted: product.Price * rate,
		ExchangeRate:   rate,
	})
}

// === ADMIN HANDLERS ===

// CreateProduct обрабатывает POST /admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обрабатывает PUT /admin/products/:id
// При изменении цены уведомление ставится в очередь; если постановка
// не удалась, обновление все равно успешно, в ответ добавляется warning
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	outcome, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	resp := entity.UpdateProductResponse{Product: outcome.Product}
	if outcome.PriceChanged && !outcome.NotificationQueued {
		resp.Warning = "Product updated, but price change notification could not be queued"
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProduct обрабатывает DELETE /admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Product deleted successfully",
	})
}

// UploadProductImage обрабатывает POST /admin/products/:id/image
// Принимает multipart поле "image"
func (h *CatalogHandler) UploadProductImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	path, err := h.imageService.Save(file, fileHeader)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store image")
		return
	}

	product, err := h.catalogService.SetProductImage(c.Request.Context(), id, path)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update product image")
		return
	}

	c.JSON(http.StatusOK, product)
}

// === HELPER FUNCTIONS ===

// respondError отправляет ответ об ошибке
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Field() + " validation failed"
	}
	return "Validation failed"
}
