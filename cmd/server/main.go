package main

import (
	"context"  // context package is needed for Redis operations
	"net/http" // HTTP server with timeouts
	"time"     // Server timeouts

	"sales_insights/internal/api"     // HTTP handlers and router
	"sales_insights/internal/config"  // Custom package for configuration
	"sales_insights/internal/db"      // Record store
	"sales_insights/internal/seed"    // Seed feed client
	"sales_insights/internal/service" // Query and ingestion service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{logrus.FieldKeyLevel: "loglevel"},
		})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logger.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logger.Info("REDIS_ADDR not set, response cache disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := service.New(
		db.NewTransactionRepository(gdb),
		seed.NewClient(cfg.SeedURL, cfg.SeedTimeout),
		cfg.DBTimeout,
	)
	r, err := api.NewRouter(svc, redisClient, api.Options{Year: cfg.StatsYear, CacheTTL: cfg.CacheTTL}, logger)
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.SeedTimeout + cfg.DBTimeout,
		IdleTimeout:       60 * time.Second,
	}
	logger.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server stopped: %v", err)
	}
}
