package entity

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"required,min=10,max=2000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
}

// UpdateProductRequest - частичное обновление: пустые поля не изменяются
// Price передается указателем, чтобы отличать "не менять" от нулевой цены
type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"omitempty,min=2,max=200"`
	Description string   `json:"description" validate:"omitempty,min=10,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // Секунды до истечения токена
	User        *User  `json:"user"`
}

// ProductView - товар в публичной выдаче с ценой, сконвертированной
// по текущему курсу
type ProductView struct {
	Product
	PriceConverted float64 `json:"price_eur"`
	ExchangeRate   float64 `json:"exchange_rate"`
}

type ProductListResponse struct {
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
}

// UpdateProductResponse содержит обновленный товар и необязательное
// предупреждение, если уведомление о смене цены не удалось поставить в очередь
type UpdateProductResponse struct {
	Product *Product `json:"product"`
	Warning string   `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
