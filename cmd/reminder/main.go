// Command reminder runs one renewal-reminder sweep and exits. It is meant to
// be scheduled by cron; exit status 1 means at least one event was not
// published.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/config"
	"github.com/wekeepgrowing/premier-subscription/internal/infrastructure/database"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"github.com/wekeepgrowing/premier-subscription/pkg/logger"
	"github.com/wekeepgrowing/premier-subscription/pkg/messaging"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
		return 1
	}
	defer zapLogger.Sync()
	zapLogger = zapLogger.Named("reminder")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(&cfg.Database, cfg.Log.Level, zapLogger)
	if err != nil {
		zapLogger.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	publisher, err := messaging.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Error("Failed to connect to redis", zap.Error(err))
		return 1
	}
	defer publisher.Close()

	repos := database.NewRepositories(db, zapLogger)
	service := usecase.NewReminderService(repos.Subscription, publisher, cfg.Reminder.Channel, zapLogger)

	result, err := service.Sweep(ctx, time.Now().UTC())
	if err != nil {
		zapLogger.Error("Reminder sweep failed",
			zap.Int("failed", result.Failed),
			zap.Error(err))
		return 1
	}
	return 0
}
