package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/google/uuid"

	"maplemarket/catalog-service/internal/app/catalog/config"
	"maplemarket/catalog-service/internal/app/catalog/entity"
	"maplemarket/catalog-service/internal/app/catalog/repository"
	"maplemarket/catalog-service/internal/app/catalog/service"
	"maplemarket/catalog-service/internal/app/catalog/util"
	"maplemarket/pkg/logger"
)

// productctl - консольная утилита для обновления товара без HTTP API
// При изменении цены ставит уведомление в очередь так же, как админка.
//
// Пример:
//
//	productctl -id <uuid> -name "New name" -price 199.99
func main() {
	var (
		idFlag          = flag.String("id", "", "product ID (uuid), required")
		nameFlag        = flag.String("name", "", "new product name (min 3 characters)")
		descriptionFlag = flag.String("description", "", "new product description")
		priceFlag       = flag.Float64("price", -1, "new product price (>= 0)")
	)
	flag.Parse()

	logger.InitConsole("productctl", "warn")

	if *idFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		flag.Usage()
		os.Exit(1)
	}

	id, err := uuid.Parse(*idFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid product ID %q\n", *idFlag)
		os.Exit(1)
	}

	if *nameFlag != "" && len(*nameFlag) < 3 {
		fmt.Fprintln(os.Stderr, "Error: name must be at least 3 characters")
		os.Exit(1)
	}

	priceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "price" {
			priceSet = true
		}
	})
	if priceSet && *priceFlag < 0 {
		fmt.Fprintln(os.Stderr, "Error: price must be >= 0")
		os.Exit(1)
	}

	if *nameFlag == "" && *descriptionFlag == "" && !priceSet {
		fmt.Fprintln(os.Stderr, "Error: nothing to update, pass -name, -description or -price")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()

	productRepo := repository.NewProductRepository(db)
	priceChangeService := service.NewPriceChangeService(kafkaProducer, cfg.Price.NotificationEmail)
	catalogService := service.NewCatalogService(productRepo, priceChangeService)

	req := &entity.UpdateProductRequest{
		Name:        *nameFlag,
		Description: *descriptionFlag,
	}
	if priceSet {
		req.Price = priceFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	outcome, err := catalogService.UpdateProduct(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			fmt.Fprintf(os.Stderr, "Error: product %s not found\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error: failed to update product: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Product %s updated\n", outcome.Product.ID)
	fmt.Printf("  name:  %s\n", outcome.Product.Name)
	fmt.Printf("  price: %.2f\n", outcome.Product.Price)

	if outcome.PriceChanged {
		if outcome.NotificationQueued {
			fmt.Println("Price change notification queued")
		} else {
			fmt.Println("Warning: price changed, but notification could not be queued")
		}
	}
}
