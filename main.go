// File: /main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"gigtrack-api/config"
	"gigtrack-api/database"
	"gigtrack-api/jobs"
	"gigtrack-api/middleware"
	"gigtrack-api/repositories"
	"gigtrack-api/routes"
	"gigtrack-api/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL, logger.Warn)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	records := repositories.NewRecordRepository(db)
	svc := routes.Services{
		Ledger:    services.NewLedgerService(records),
		Analytics: services.NewAnalyticsService(records, loc, time.Now),
		Backup:    services.NewBackupService(records),
	}

	var job *jobs.WeeklyReportJob
	if cfg.WeeklyReportInterval > 0 {
		job = jobs.NewWeeklyReportJob(records, svc.Analytics, services.NewEmailService(cfg), cfg.WeeklyReportInterval)
		job.Start()
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS(cfg.CORSOrigins))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ErrorHandler())

	routes.SetupRoutes(router, db, cfg, svc)

	log.Printf("Starting GigTrack API server on port %s (timezone %s)", cfg.Port, loc)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if job != nil {
			job.Stop()
		}
		log.Fatal("Failed to start server:", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	if job != nil {
		job.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
