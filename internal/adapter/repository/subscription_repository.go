package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/model"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// GetByOrganizationID retrieves the subscription of an organization with its invoices, newest first
func (r *subscriptionRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*entity.Subscription, error) {
	orgID, err := parseID("organization", organizationID)
	if err != nil {
		return nil, err
	}

	var sub model.Subscription
	err = r.db.WithContext(ctx).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("organization_id = ?", orgID).
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription by organization ID",
			zap.String("organization_id", organizationID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return subscriptionToEntity(&sub), nil
}

// ListByStatus retrieves all subscriptions in a status
func (r *subscriptionRepository) ListByStatus(ctx context.Context, status entity.SubscriptionStatus) ([]*entity.Subscription, error) {
	var subs []model.Subscription

	err := r.db.WithContext(ctx).
		Where("status = ?", model.SubscriptionStatus(status)).
		Order("current_period_end ASC").
		Find(&subs).Error
	if err != nil {
		r.logger.Error("Failed to list subscriptions by status",
			zap.String("status", string(status)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	result := make([]*entity.Subscription, 0, len(subs))
	for i := range subs {
		result = append(result, subscriptionToEntity(&subs[i]))
	}
	return result, nil
}

// lockSubscription loads the organization's subscription row FOR UPDATE
func lockSubscription(tx *gorm.DB, organizationID string) (*model.Subscription, error) {
	orgID, err := parseID("organization", organizationID)
	if err != nil {
		return nil, err
	}

	var sub model.Subscription
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ?", orgID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to lock subscription: %w", err)
	}
	return &sub, nil
}

// ScheduleCancel sets a future cancellation date and turns auto-renewal off
func (r *subscriptionRepository) ScheduleCancel(ctx context.Context, organizationID string, cancelAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := lockSubscription(tx, organizationID)
		if err != nil {
			return err
		}

		at := cancelAt.UTC()
		err = tx.Model(&model.Subscription{}).
			Where("id = ?", sub.ID).
			Updates(map[string]interface{}{
				"cancel_at":    &at,
				"auto_renewal": false,
				"updated_at":   time.Now(),
			}).Error
		if err != nil {
			r.logger.Error("Failed to schedule cancellation",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to schedule cancellation: %w", err)
		}

		if err := tx.Model(&model.Organization{}).
			Where("id = ?", sub.OrganizationID).
			Update("auto_renewal", false).Error; err != nil {
			return fmt.Errorf("failed to update organization auto renewal: %w", err)
		}

		var oldCancelAt interface{}
		if sub.CancelAt != nil {
			oldCancelAt = *sub.CancelAt
		}
		return writeAudit(tx, sub.OrganizationID, model.AuditActionScheduleCancel,
			model.JSONB{"cancel_at": oldCancelAt, "auto_renewal": sub.AutoRenewal},
			model.JSONB{"cancel_at": at, "auto_renewal": false})
	})
}

// Cancel transitions the subscription and its organization to CANCELLED
func (r *subscriptionRepository) Cancel(ctx context.Context, organizationID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := lockSubscription(tx, organizationID)
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.Model(&model.Subscription{}).
			Where("id = ?", sub.ID).
			Updates(map[string]interface{}{
				"status":       model.SubscriptionStatusCancelled,
				"auto_renewal": false,
				"updated_at":   now,
			}).Error
		if err != nil {
			r.logger.Error("Failed to update subscription status",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to update subscription status: %w", err)
		}

		err = tx.Model(&model.Organization{}).
			Where("id = ?", sub.OrganizationID).
			Updates(map[string]interface{}{
				"status":       model.SubscriptionStatusCancelled,
				"auto_renewal": false,
				"updated_at":   now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update organization status: %w", err)
		}

		r.logger.Info("Subscription status updated to cancelled",
			zap.String("subscription_id", sub.ID.String()),
			zap.String("organization_id", organizationID))

		return writeAudit(tx, sub.OrganizationID, model.AuditActionCancel,
			model.JSONB{"status": string(sub.Status)},
			model.JSONB{"status": string(model.SubscriptionStatusCancelled)})
	})
}

// Renew starts the next period and records the renewal invoice
func (r *subscriptionRepository) Renew(ctx context.Context, renewal repository.Renewal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := lockSubscription(tx, renewal.OrganizationID)
		if err != nil {
			return err
		}
		if sub.Status == model.SubscriptionStatusCancelled {
			return domainErrors.ErrSubscriptionCancelled
		}

		start, end := renewal.PeriodStart.UTC(), renewal.PeriodEnd.UTC()
		err = tx.Model(&model.Subscription{}).
			Where("id = ?", sub.ID).
			Updates(map[string]interface{}{
				"current_period_start": start,
				"current_period_end":   end,
				"cancel_at":            nil,
				"status":               model.SubscriptionStatusActive,
				"updated_at":           time.Now(),
			}).Error
		if err != nil {
			r.logger.Error("Failed to renew subscription",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to renew subscription: %w", err)
		}

		if err := tx.Model(&model.Organization{}).
			Where("id = ?", sub.OrganizationID).
			Update("status", model.SubscriptionStatusActive).Error; err != nil {
			return fmt.Errorf("failed to update organization status: %w", err)
		}

		invoice := invoiceToModel(sub.ID, renewal.Invoice)
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create renewal invoice: %w", err)
		}

		r.logger.Info("Subscription renewed",
			zap.String("subscription_id", sub.ID.String()),
			zap.Time("period_start", start),
			zap.Time("period_end", end),
			zap.String("invoice_number", invoice.Number))

		return writeAudit(tx, sub.OrganizationID, model.AuditActionRenew,
			model.JSONB{"period_start": sub.CurrentPeriodStart, "period_end": sub.CurrentPeriodEnd},
			model.JSONB{"period_start": start, "period_end": end, "invoice": invoice.Number})
	})
}

// UpsertInvoices stores invoices fetched from the billing provider, keyed by number
func (r *subscriptionRepository) UpsertInvoices(ctx context.Context, subscriptionID string, invoices []entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	subID, err := parseID("subscription", subscriptionID)
	if err != nil {
		return err
	}

	rows := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, invoiceToModel(subID, inv))
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "number"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "status", "paid_at", "due_date"}),
		}).
		Create(&rows).Error
	if err != nil {
		r.logger.Error("Failed to upsert invoices",
			zap.String("subscription_id", subscriptionID),
			zap.Int("count", len(rows)),
			zap.Error(err))
		return fmt.Errorf("failed to upsert invoices: %w", err)
	}
	return nil
}
