package repository

import (
	"context"
	"fmt"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/entity"
	"maplemarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type notificationLogRepository struct {
	collection *mongo.Collection
}

// NewNotificationLogRepository создает новый репозиторий журнала уведомлений
// Автоматически создает индекс по product_id для выборки истории по товару
func NewNotificationLogRepository(db *mongo.Database) NotificationLogRepository {
	collection := db.Collection("price_change_notifications")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetName("product_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create index on product_id")
	}

	return &notificationLogRepository{
		collection: collection,
	}
}

// Create сохраняет запись журнала
func (r *notificationLogRepository) Create(ctx context.Context, record *entity.NotificationRecord) error {
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}

	return nil
}

// GetByProductID получает историю уведомлений по товару, новые первыми
func (r *notificationLogRepository) GetByProductID(ctx context.Context, productID string) ([]entity.NotificationRecord, error) {
	filter := bson.M{"product_id": productID}
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notification records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.NotificationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode notification records: %w", err)
	}

	return records, nil
}
