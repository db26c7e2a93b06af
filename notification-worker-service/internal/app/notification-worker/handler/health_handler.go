package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"maplemarket/notification-worker-service/internal/app/notification-worker/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheckHandler отдает состояние зависимостей worker'а
type HealthCheckHandler struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
	rateCache   repository.RateCacheRepository
}

func NewHealthCheckHandler(
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	rateCache repository.RateCacheRepository,
) *HealthCheckHandler {
	return &HealthCheckHandler{
		mongoClient: mongoClient,
		redisClient: redisClient,
		rateCache:   rateCache,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "healthy"

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		checks["mongodb"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["mongodb"] = "healthy"
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["redis"] = "healthy"
	}

	// Отсутствие курса в кеше не валит health: каталог умеет жить без него
	if _, err := h.rateCache.Get(ctx); err != nil {
		checks["exchange_rate_cache"] = "warning: " + err.Error()
	} else {
		checks["exchange_rate_cache"] = "healthy"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/liveness", h.Liveness)
}
