package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by lifecycle commands
const (
	AuditActionOnboard        = "organization.onboard"
	AuditActionScheduleCancel = "subscription.schedule_cancel"
	AuditActionCancel         = "subscription.cancel"
	AuditActionRenew          = "subscription.renew"
	AuditActionChangePlan     = "subscription.change_plan"
	AuditActionFreeSlotReset  = "free_slot.reset"
	AuditActionFreeSlotUse    = "free_slot.consume"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Action         string     `gorm:"not null;size:100;index" json:"action"`
	OldValues      JSONB      `gorm:"type:jsonb" json:"old_values,omitempty"`
	NewValues      JSONB      `gorm:"type:jsonb" json:"new_values,omitempty"`
	CreatedAt      time.Time  `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (AuditLog) TableName() string {
	return "audit_log"
}

// JSONB represents a JSONB database type
type JSONB map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONB) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		*j = make(JSONB)
		return nil
	}
}
