// Package main provides the main entry point for the Sales Insight analytics service
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/agromercantil/sales-insight/app/handlers"
	"github.com/agromercantil/sales-insight/app/router"
	businessflow "github.com/agromercantil/sales-insight/business_flow"
	"github.com/agromercantil/sales-insight/config"
	"github.com/agromercantil/sales-insight/dataset"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application represents the main application structure
type Application struct {
	router router.Router
	config *config.AppConfig
	server *fiber.App
}

func main() {
	log.Println("Starting Sales Insight application...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app := initializeApplication(cfg)
	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a rotating file when one is
// configured; otherwise logs stay on stderr.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.File == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
}

// initializeApplication wires the dataset generator, the analytics flows and
// the HTTP layer together.
func initializeApplication(cfg *config.AppConfig) *Application {
	gen := dataset.New(dataset.Params{
		Seed:          cfg.Analytics.Seed,
		WindowDays:    cfg.Analytics.WindowDays,
		OrderCount:    cfg.Analytics.OrderCount,
		CustomerCount: cfg.Analytics.CustomerCount,
		ProductCount:  cfg.Analytics.ProductCount,
		InactiveCount: cfg.Analytics.InactiveCount,
		MonthCount:    cfg.Analytics.MonthCount,
	})

	analyticsFlow := businessflow.NewAnalyticsFlow(
		gen,
		businessflow.NewFilterFlow(),
		businessflow.NewAggregationFlow(),
		businessflow.NewSegmentationFlow(),
		businessflow.NewSummaryFlow(),
		businessflow.AnalyticsOptions{
			TopN:          cfg.Analytics.TopN,
			HistogramBins: cfg.Analytics.HistogramBins,
			BucketCount:   cfg.Analytics.BucketCount,
		},
	)
	exportFlow := businessflow.NewExportFlow()

	validate := validator.New()
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsFlow, validate)
	exportHandler := handlers.NewExportHandler(analyticsFlow, exportFlow, validate)

	r := router.NewFiberRouter(cfg, analyticsHandler, exportHandler)
	return &Application{
		router: r,
		config: cfg,
		server: r.GetApp(),
	}
}
