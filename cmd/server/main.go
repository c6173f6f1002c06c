package main

import (
	"context"                         // context package is needed for Redis and shutdown
	"errors"                          // Distinguish a clean server close
	"net/http"                        // HTTP server
	"os"                              // Process signals
	"os/signal"                       // Signal notification
	"syscall"                         // SIGTERM
	"time"                            // Shutdown grace period
	"user_orders/internal/api"        // Custom package for API handlers
	"user_orders/internal/cache"      // Custom package for the user listing cache
	"user_orders/internal/config"     // Custom package for configuration
	"user_orders/internal/db"         // Custom package for database access
	"user_orders/internal/middleware" // Custom package for middleware
	"user_orders/internal/repository" // Custom package for persistence
	"user_orders/internal/service"    // Custom package for business logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, keeping %s", cfg.LogLevel, logrus.GetLevel())
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("failed to migrate DB: %v", err)
		}
		logrus.Info("Database migrated")
	}

	// Setup Redis client only when the listing is cached there
	var redisClient *redis.Client
	if cfg.CacheDriver == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}
	listingCache, err := cache.New(cfg.CacheDriver, cfg.CacheTTL, cfg.CacheSize, redisClient)
	if err != nil {
		logrus.Fatalf("failed to set up cache: %v", err)
	}

	// Wire services
	log := logrus.StandardLogger()
	users := service.NewUserService(repository.NewUserRepository(gdb), listingCache, log, cfg.InvalidateOnWrite)
	orders := service.NewOrderService(repository.NewOrderRepository(gdb), users, log)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Write routes are protected by operator JWT when a secret is configured
	var guards []gin.HandlerFunc
	if cfg.JWTSecret != "" {
		guards = append(guards, middleware.JWTAuthMiddleware(cfg.JWTSecret))
	} else {
		logrus.Warn("JWT_SECRET is empty, write routes are unauthenticated")
	}
	api.RegisterRoutes(r, users, orders, guards...)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort, // Listen address
		Handler:           r,                 // Gin router
		ReadHeaderTimeout: 10 * time.Second,  // Slowloris guard
	}

	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for interrupt and drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
}
