package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product представляет товар в каталоге
// Цена хранится в базовой валюте (USD)
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string    `json:"image" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// User представляет администратора каталога
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PriceChangeEvent представляет событие изменения цены товара для Kafka
// Адрес получателя фиксируется в момент постановки в очередь
type PriceChangeEvent struct {
	EventType   string    `json:"event_type"` // PRICE_CHANGED
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	OldPrice    float64   `json:"old_price"`
	NewPrice    float64   `json:"new_price"`
	Email       string    `json:"email"`
	Timestamp   time.Time `json:"timestamp"`
}

// CachedRate представляет закешированный курс конвертации, хранится в Redis с TTL
type CachedRate struct {
	Rate      float64   `json:"rate"`       // Курс базовой валюты к целевой
	UpdatedAt time.Time `json:"updated_at"` // Время успешного получения из API
}

// ExchangeRatesResponse - формат ответа внешнего API курсов валют
type ExchangeRatesResponse struct {
	Rates map[string]float64 `json:"rates"` // Курсы валют: {"EUR": 0.93, "GBP": 0.79, ...}
}

const (
	EventTypePriceChanged = "PRICE_CHANGED"
)
