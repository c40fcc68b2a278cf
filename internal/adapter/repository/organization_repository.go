package repository

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/model"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type organizationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB, logger *zap.Logger) repository.OrganizationRepository {
	return &organizationRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an organization by its ID
func (r *organizationRepository) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	orgID, err := parseID("organization", id)
	if err != nil {
		return nil, err
	}

	var org model.Organization
	err = r.db.WithContext(ctx).Where("id = ?", orgID).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get organization",
			zap.String("organization_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return organizationToEntity(&org), nil
}

// Onboard creates the organization together with its subscription, first
// invoice, free-slot counter and admin member
func (r *organizationRepository) Onboard(ctx context.Context, records repository.OnboardingRecords) error {
	org, err := organizationToModel(records.Organization)
	if err != nil {
		return err
	}
	sub, err := subscriptionToModel(records.Subscription)
	if err != nil {
		return err
	}
	counter, err := freeSlotToModel(records.FreeSlots)
	if err != nil {
		return err
	}
	admin, err := memberToModel(records.Admin)
	if err != nil {
		return err
	}
	for _, inv := range records.Subscription.Invoices {
		sub.Invoices = append(sub.Invoices, invoiceToModel(sub.ID, inv))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		if err := tx.Create(counter).Error; err != nil {
			return fmt.Errorf("failed to create free slot counter: %w", err)
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin member: %w", err)
		}

		if err := writeAudit(tx, org.ID, model.AuditActionOnboard, nil, model.JSONB{
			"plan_tier":   org.PlanTier,
			"final_price": org.FinalPrice.String(),
			"period_end":  sub.CurrentPeriodEnd,
			"admin_email": admin.Email,
		}); err != nil {
			return err
		}

		r.logger.Info("Organization onboarded",
			zap.String("organization_id", org.ID.String()),
			zap.String("subscription_id", sub.ID.String()),
			zap.String("plan_tier", org.PlanTier))
		return nil
	})
}

// ChangePlan moves an organization to another tier
func (r *organizationRepository) ChangePlan(ctx context.Context, change repository.PlanChange) error {
	orgID, err := parseID("organization", change.OrganizationID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org model.Organization
		if err := tx.Where("id = ?", orgID).First(&org).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrOrganizationNotFound
			}
			return fmt.Errorf("failed to load organization: %w", err)
		}

		err := tx.Model(&model.Organization{}).
			Where("id = ?", orgID).
			Updates(map[string]interface{}{
				"plan_tier":   string(change.PlanTier),
				"base_price":  change.BasePrice,
				"final_price": change.FinalPrice,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update organization plan: %w", err)
		}

		res := tx.Model(&model.Subscription{}).
			Where("organization_id = ?", orgID).
			Update("plan_tier", string(change.PlanTier))
		if res.Error != nil {
			return fmt.Errorf("failed to update subscription plan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domainErrors.ErrSubscriptionNotFound
		}

		// used is capped at the new total so used <= total holds after a downgrade
		err = tx.Model(&model.FreeSlotCounter{}).
			Where("organization_id = ?", orgID).
			Updates(map[string]interface{}{
				"total": change.FreeSlotTotal,
				"used":  gorm.Expr("LEAST(used, ?)", change.FreeSlotTotal),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update free slot total: %w", err)
		}

		if err := writeAudit(tx, orgID, model.AuditActionChangePlan,
			model.JSONB{"plan_tier": org.PlanTier, "final_price": org.FinalPrice.String()},
			model.JSONB{"plan_tier": string(change.PlanTier), "final_price": change.FinalPrice.String()},
		); err != nil {
			return err
		}

		r.logger.Info("Organization plan changed",
			zap.String("organization_id", change.OrganizationID),
			zap.String("from", org.PlanTier),
			zap.String("to", string(change.PlanTier)))
		return nil
	})
}
