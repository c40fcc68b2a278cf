package database

import (
	"github.com/wekeepgrowing/premier-subscription/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Enum types must exist before the tables that use them
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	logger.Info("Running GORM auto-migrations...")
	err := db.AutoMigrate(
		&model.Organization{},
		&model.Member{},
		&model.Subscription{},
		&model.Invoice{},
		&model.FreeSlotCounter{},
		&model.AuditLog{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	if err := createConstraints(db, logger); err != nil {
		logger.Error("Failed to create constraints", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// createCustomTypes creates custom PostgreSQL types
func createCustomTypes(db *gorm.DB) error {
	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'premier_subscription_status')`).Scan(&exists).Error; err != nil {
		return err
	}
	if !exists {
		if err := db.Exec(`CREATE TYPE premier_subscription_status AS ENUM ('ACTIVE', 'PENDING', 'CANCELLED')`).Error; err != nil {
			return err
		}
	}
	return nil
}

// createCustomIndexes creates indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// The reminder sweep scans active subscriptions by period end
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_subscriptions_active_period_end ON subscriptions (current_period_end) WHERE status = 'ACTIVE'`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_invoices_subscription_created ON invoices (subscription_id, created_at DESC)`).Error; err != nil {
		return err
	}

	return nil
}

// createConstraints adds the record invariants as CHECK constraints
func createConstraints(db *gorm.DB, logger *zap.Logger) error {
	constraints := []struct {
		table, name, check string
	}{
		{"subscriptions", "chk_subscriptions_period", "current_period_end >= current_period_start"},
		{"subscriptions", "chk_subscriptions_cancel_at", "cancel_at IS NULL OR cancel_at BETWEEN current_period_start AND current_period_end"},
		{"free_slot_counters", "chk_free_slot_counters_used", "used >= 0 AND used <= total"},
		{"organizations", "chk_organizations_plan_tier", "plan_tier IN ('STANDARD', 'EXPERT')"},
	}

	for _, c := range constraints {
		var exists bool
		if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.name + ` CHECK (` + c.check + `)`).Error; err != nil {
			return err
		}
		logger.Info("Created constraint", zap.String("table", c.table), zap.String("constraint", c.name))
	}
	return nil
}
