package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/model"
	"gorm.io/gorm"
)

// writeAudit records a lifecycle command inside the caller's transaction
func writeAudit(tx *gorm.DB, organizationID uuid.UUID, action string, oldValues, newValues model.JSONB) error {
	entry := &model.AuditLog{
		OrganizationID: organizationID,
		Action:         action,
		OldValues:      oldValues,
		NewValues:      newValues,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to write audit log for %s: %w", action, err)
	}
	return nil
}
