package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Типы событий, которые обрабатывает worker
const (
	EventTypePriceChanged = "PRICE_CHANGED"
)

// Статусы записей журнала уведомлений
const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// PriceChangeEvent представляет событие изменения цены товара из Kafka
// Формат совпадает с тем, что публикует каталог
type PriceChangeEvent struct {
	EventType   string    `json:"event_type"` // PRICE_CHANGED
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	OldPrice    float64   `json:"old_price"`
	NewPrice    float64   `json:"new_price"`
	Email       string    `json:"email"`
	Timestamp   time.Time `json:"timestamp"`
}

// NotificationRecord - запись журнала отправленных уведомлений в MongoDB
// Журнал ведется best-effort и на доставку писем не влияет
type NotificationRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID   string             `bson:"product_id" json:"product_id"`
	ProductName string             `bson:"product_name" json:"product_name"`
	OldPrice    float64            `bson:"old_price" json:"old_price"`
	NewPrice    float64            `bson:"new_price" json:"new_price"`
	Recipient   string             `bson:"recipient" json:"recipient"`
	Subject     string             `bson:"subject" json:"subject"`
	Status      string             `bson:"status" json:"status"` // sent / failed
	Error       string             `bson:"error,omitempty" json:"error,omitempty"`
	SentAt      time.Time          `bson:"sent_at" json:"sent_at"`
}

// CachedRate представляет закешированный курс конвертации, хранится в Redis с TTL
type CachedRate struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExchangeRatesResponse - ответ внешнего API курсов валют
type ExchangeRatesResponse struct {
	Rates map[string]float64 `json:"rates"`
}
