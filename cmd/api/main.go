package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/allyounowbud/onetrack/configs"
	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/events"
	"github.com/allyounowbud/onetrack/internal/handler"
	"github.com/allyounowbud/onetrack/internal/notify"
	"github.com/allyounowbud/onetrack/internal/repository"
	"github.com/allyounowbud/onetrack/internal/router"
	"github.com/allyounowbud/onetrack/internal/service"
	"github.com/allyounowbud/onetrack/internal/storage"
	"github.com/allyounowbud/onetrack/utils"
)

func main() {
	cfg := configs.AppLoad()
	logger := utils.NewLogger()

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	var store storage.TableStore
	var err error
	switch cfg.Backend {
	case configs.BackendPostgres:
		store, err = storage.NewPostgresStore(cfg.DBDSN)
	default:
		store, err = storage.NewSheetsStore(ctx, storage.SheetsOptions{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			CredentialsJSON: []byte(cfg.Sheets.CredentialsJSON),
			CredentialsFile: cfg.Sheets.CredentialsFile,
			ReadsPerMinute:  cfg.Sheets.ReadsPerMinute,
		})
	}
	if err != nil {
		logger.Fatalf("Failed to initialize %s backend: %v", cfg.Backend, err)
	}
	logger.WithField("backend", cfg.Backend).Info("Table store initialized")

	snapshots := cache.New(cache.DefaultTTL)
	ledgerRepo := repository.NewLedgerRepository(store, snapshots, logger)
	referenceRepo := repository.NewReferenceRepository(store, snapshots, logger)

	hub := notify.NewHub(logger)
	go hub.Run()

	notifiers := []service.Notifier{hub}
	if cfg.Kafka.Broker != "" {
		producer, err := events.NewProducer(cfg.Kafka, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize Kafka producer: %v", err)
		}
		defer producer.Close()
		notifiers = append(notifiers, producer)
	}

	orderBookService := service.NewOrderBookService(ledgerRepo, snapshots, notifiers...)
	databaseService := service.NewDatabaseService(referenceRepo, notifiers...)
	inventoryService := service.NewInventoryService(ledgerRepo, referenceRepo)
	statsService := service.NewStatsService(ledgerRepo)
	holdingService := service.NewHoldingService(ledgerRepo)

	routerConfig := &router.Config{
		OrderBookHandler: handler.NewOrderBookHandler(orderBookService),
		ReportHandler:    handler.NewReportHandler(inventoryService, statsService, holdingService),
		DatabaseHandler:  handler.NewDatabaseHandler(databaseService),
		Hub:              hub,
	}

	engine := router.NewRouter(routerConfig)
	if err := engine.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
