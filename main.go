package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/goldenglowitsolutions/scheduling-service/internal/cache"
	"github.com/goldenglowitsolutions/scheduling-service/internal/config"
	"github.com/goldenglowitsolutions/scheduling-service/internal/events"
	"github.com/goldenglowitsolutions/scheduling-service/internal/handlers"
	"github.com/goldenglowitsolutions/scheduling-service/internal/ratelimit"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories/postgres"
	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
	"github.com/goldenglowitsolutions/scheduling-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured). The service degrades to uncached
	// operation when redis is down.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
			redisClient = nil
		}
	}

	// Initialize event publisher. Without brokers events are recorded in
	// memory only.
	var publisher events.EventPublisher
	if cfg.KafkaBrokers != "" {
		publisher, err = events.NewKafkaEventPublisher(strings.Split(cfg.KafkaBrokers, ","), slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	} else {
		publisher = events.NewMockEventPublisher(slogLogger)
	}

	// Initialize repositories
	repoManager := postgres.NewPostgreSQLRepositoryManager(db, redisClient)

	// Initialize validator
	v := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(repoManager, v, publisher, logger)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Seed sample data outside production
	if cfg.LoadSampleData && !cfg.IsProduction() {
		if err := serviceManager.GetSeedService().LoadSampleData(context.Background()); err != nil {
			log.Fatalf("Failed to load sample data: %v", err)
		}
	}

	// Initialize rate limiter
	bucket := ratelimit.NewBucket(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPeriod)

	// Initialize handlers
	cacheManager := cache.NewCacheManager(redisClient)
	handlerManager := handlers.NewHandlerManager(serviceManager, cacheManager, bucket, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close redis client: %v", err)
		}
	}

	logger.Info("Server exited")
}
