package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventmngt/eventapi/internal/config"
	"github.com/eventmngt/eventapi/internal/connect"
	"github.com/eventmngt/eventapi/internal/container"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/routes"
	"github.com/joho/godotenv"
)

const sessionCleanupInterval = 10 * time.Minute

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting event API server", "environment", cfg.Environment)

	// Initialize database connections
	db, err := connect.OpenDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to PostgreSQL successfully")

	if err := models.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate schema", "error", err)
		os.Exit(1)
	}

	redisClient, err := connect.OpenRedis(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	if redisClient == nil {
		logger.Warn("REDIS_ADDR not set, keeping sessions in memory")
	} else {
		logger.Info("Connected to Redis successfully")
	}

	publisher, err := connect.OpenPublisher(cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, booking events will not be published")
	}

	// Initialize dependency container
	appContainer := container.NewContainer(logger, db, redisClient, publisher, container.Options{
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.IsProduction(),
		CORSOrigins:   cfg.CORSOrigins,
	})

	created, err := appContainer.UserService.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("Failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("Created admin account", "email", cfg.AdminEmail)
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	if appContainer.MemorySessions != nil {
		go cleanupSessions(bgCtx, appContainer.MemorySessions)
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	stopBackground()

	if err := publisher.Close(); err != nil {
		logger.Error("Error closing RabbitMQ publisher", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error disconnecting from Redis", "error", err)
		}
	}
	if err := connect.CloseDatabase(db); err != nil {
		logger.Error("Error disconnecting from PostgreSQL", "error", err)
	}

	logger.Info("Server exited")
}

func cleanupSessions(ctx context.Context, sessions *models.MemorySessionRepo) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.CleanupExpired()
		}
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelInfo),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelDebug),
		})
	}

	return slog.New(handler)
}

// parseLevel reads LOG_LEVEL; empty or unknown values keep the environment default.
func parseLevel(s string, fallback slog.Level) slog.Level {
	var level slog.Level
	if s == "" {
		return fallback
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return level
}
