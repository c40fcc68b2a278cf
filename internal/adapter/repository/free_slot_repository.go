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

type freeSlotRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFreeSlotRepository creates a new free-slot counter repository
func NewFreeSlotRepository(db *gorm.DB, logger *zap.Logger) repository.FreeSlotRepository {
	return &freeSlotRepository{
		db:     db,
		logger: logger,
	}
}

// GetByOrganizationID retrieves the stored counter without applying any reset
func (r *freeSlotRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*entity.FreeSlotCounter, error) {
	orgID, err := parseID("organization", organizationID)
	if err != nil {
		return nil, err
	}

	var counter model.FreeSlotCounter
	err = r.db.WithContext(ctx).Where("organization_id = ?", orgID).First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get free slot counter",
			zap.String("organization_id", organizationID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get free slot counter: %w", err)
	}
	return freeSlotToEntity(&counter), nil
}

// Consume uses one free slot, persisting a pending anniversary reset first
func (r *freeSlotRepository) Consume(ctx context.Context, organizationID string, resetAt *time.Time) (*entity.FreeSlotCounter, error) {
	orgID, err := parseID("organization", organizationID)
	if err != nil {
		return nil, err
	}

	var result *entity.FreeSlotCounter
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter model.FreeSlotCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ?", orgID).
			First(&counter).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrOrganizationNotFound
			}
			return fmt.Errorf("failed to lock free slot counter: %w", err)
		}

		if resetAt != nil && counter.LastResetAt.Before(*resetAt) {
			if err := writeAudit(tx, orgID, model.AuditActionFreeSlotReset,
				model.JSONB{"used": counter.Used, "last_reset_at": counter.LastResetAt},
				model.JSONB{"used": 0, "last_reset_at": resetAt.UTC()},
			); err != nil {
				return err
			}
			counter.Used = 0
			counter.LastResetAt = resetAt.UTC()
		}

		if counter.Used >= counter.Total {
			return domainErrors.NewFreeSlotExhaustedError(counter.Used, counter.Total)
		}
		counter.Used++

		err = tx.Model(&model.FreeSlotCounter{}).
			Where("organization_id = ?", orgID).
			Updates(map[string]interface{}{
				"used":          counter.Used,
				"last_reset_at": counter.LastResetAt,
				"updated_at":    time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update free slot counter: %w", err)
		}

		if err := writeAudit(tx, orgID, model.AuditActionFreeSlotUse, nil,
			model.JSONB{"used": counter.Used, "total": counter.Total}); err != nil {
			return err
		}

		result = freeSlotToEntity(&counter)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
