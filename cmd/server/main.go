package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/wekeepgrowing/premier-subscription/internal/adapter/handler/http"
	"github.com/wekeepgrowing/premier-subscription/internal/config"
	"github.com/wekeepgrowing/premier-subscription/internal/infrastructure/database"
	grpcServer "github.com/wekeepgrowing/premier-subscription/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/premier-subscription/internal/infrastructure/http"
	"github.com/wekeepgrowing/premier-subscription/internal/infrastructure/provider"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"github.com/wekeepgrowing/premier-subscription/pkg/logger"
	"github.com/wekeepgrowing/premier-subscription/pkg/messaging"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger = zapLogger.With(
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment))

	catalog, err := config.LoadPlanCatalog(cfg.Pricing.PlanCatalogPath)
	if err != nil {
		zapLogger.Fatal("Failed to load plan catalog", zap.Error(err))
	}

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, cfg.Log.Level, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)
	invoiceProvider := provider.NewFactory(cfg, zapLogger).InvoiceProvider()

	entitlementService := usecase.NewEntitlementService(repos.Member, repos.Organization, repos.Subscription, zapLogger)
	subscriptionService := usecase.NewSubscriptionService(
		repos.Organization, repos.Subscription, repos.FreeSlot, invoiceProvider, zapLogger, cfg.Pricing.FreeSlotsPerYear)
	freeSlotService := usecase.NewFreeSlotService(repos.Organization, repos.FreeSlot, zapLogger)
	pricingService := usecase.NewPricingService(
		repos.Organization, config.Plans(catalog), cfg.Pricing.FreeSlotsPerYear, zapLogger)

	h := &handlers.Handlers{
		Plans:         handlers.NewPlanHandler(zapLogger, pricingService, entitlementService),
		Features:      handlers.NewFeatureHandler(zapLogger, entitlementService),
		Organizations: handlers.NewOrganizationHandler(zapLogger, entitlementService, subscriptionService),
		Subscriptions: handlers.NewSubscriptionHandler(zapLogger, entitlementService, subscriptionService),
		FreeSlots:     handlers.NewFreeSlotHandler(zapLogger, entitlementService, freeSlotService),
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The in-process reminder loop is optional; cmd/reminder covers cron setups
	if cfg.Reminder.Interval > 0 {
		publisher, err := messaging.NewRedisClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer publisher.Close()

		reminders := usecase.NewReminderService(repos.Subscription, publisher, cfg.Reminder.Channel, zapLogger.Named("reminder"))
		go reminders.Run(ctx, cfg.Reminder.Interval)
	}

	// Initialize servers
	grpcSrv := grpcServer.NewServer(cfg, zapLogger)
	httpSrv := httpServer.NewServer(cfg, zapLogger, h)

	// Start servers
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
