package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cryptotax-micro/backend/internal/api"
	"github.com/cryptotax-micro/backend/internal/config"
	"github.com/cryptotax-micro/backend/internal/database"
	"github.com/cryptotax-micro/backend/internal/repository"
	"github.com/cryptotax-micro/backend/internal/secure"
	"github.com/cryptotax-micro/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Payload encryption for saved reports
	codec, err := secure.NewCodec(cfg.Reports.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialize report encryption: %v", err)
	}
	if cfg.Reports.EncryptionKey == "" {
		log.Println("REPORT_ENCRYPTION_KEY not set; saved reports will not survive a restart")
	}

	// Create repositories and services
	reportRepo := repository.NewReportRepository(db)

	systemService := service.NewSystemService(db)
	taxService := service.NewTaxService(cfg.Calculation.MaxBatchSize)
	reportService := service.NewReportService(
		reportRepo,
		taxService,
		codec,
		cfg.Reports.RetentionDays,
	)

	// Daily purge of saved reports past retention
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		removed, err := reportService.PurgeExpired(context.Background())
		if err != nil {
			log.Printf("Report purge failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("Purged %d expired reports", removed)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule report purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, taxService, reportService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
