// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/cmd"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/queue"
	"salon-booking/internal/usecase"
	"salon-booking/internal/wire"
	"salon-booking/pkg/cache"
	"salon-booking/pkg/database"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis is optional; a nil client disables booking-info caching.
	redisClient := cache.NewRedisClient(config.Redis)
	if redisClient == nil {
		logger.Warn("Redis unavailable, booking info caching disabled")
	} else {
		defer redisClient.Close()
	}

	// Event publisher; an empty queue URL drops events silently.
	publisher := queue.NewPublisher(config.Queue.URL, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, redisClient, publisher, config, logger)

	// Reminder watcher runs until shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := usecase.NewReminderWatcher(
		repos,
		publisher,
		time.Duration(config.Watcher.IntervalSeconds)*time.Second,
		logger,
	)
	go watcher.Run(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
