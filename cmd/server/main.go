package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/assetdesk/service-booking/internal/application"
	"github.com/assetdesk/service-booking/internal/config"
	bookingEvents "github.com/assetdesk/service-booking/internal/events"
	"github.com/assetdesk/service-booking/internal/handler"
	"github.com/assetdesk/service-booking/internal/jobs"
	"github.com/assetdesk/service-booking/internal/repository"
	"github.com/assetdesk/service-booking/pkg/auth"
	"github.com/assetdesk/service-booking/pkg/database"
	"github.com/assetdesk/service-booking/pkg/health"
	"github.com/assetdesk/service-booking/pkg/kafka"
	"github.com/assetdesk/service-booking/pkg/logger"
	"github.com/assetdesk/service-booking/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.AssetModel{},
			&repository.EmployeeModel{},
			&repository.HistoryEntryModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	assetRepo := repository.NewGormAssetRepository(db)
	employeeRepo := repository.NewGormEmployeeRepository(db)
	historyRecorder := repository.NewGormHistoryRecorder(db)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		assetRepo,
		employeeRepo,
		historyRecorder,
		kafkaProducer,
		log,
	)
	assetService := application.NewAssetService(assetRepo, kafkaProducer, log)
	employeeService := application.NewEmployeeService(employeeRepo, log)

	// Initialize and start asset event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "booking-service"
	assetConsumer := bookingEvents.NewAssetEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		func(ctx context.Context, evt bookingEvents.AssetRetiredEvent) error {
			_, err := bookingService.CancelOpenBookingsForAsset(ctx, evt.AssetID)
			return err
		},
		log,
	)
	defer func() { _ = assetConsumer.Close() }()

	go func() {
		log.Info("starting asset event consumer")
		if err := assetConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("asset event consumer error", zap.Error(err))
		}
	}()

	// Start scheduled jobs
	jobRunner := jobs.NewJobRunner(bookingService, log)
	if err := jobRunner.Start(); err != nil {
		log.Fatal("failed to start job runner", zap.Error(err))
	}

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	assetHandler := handler.NewAssetHandler(assetService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	adminHandler := handler.NewAdminBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-booking")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	assetHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	employeeHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Cancel the consumer context and stop scheduled jobs
	cancel()
	<-jobRunner.Stop().Done()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
