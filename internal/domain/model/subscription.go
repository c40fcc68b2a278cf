package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Scan implements sql.Scanner interface
func (s *SubscriptionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(v)
	default:
		*s = SubscriptionStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SubscriptionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Subscription is the single subscription row owned by an organization
type Subscription struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID     uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"organization_id"`
	PlanTier           string             `gorm:"not null;size:20" json:"plan_tier"`
	Status             SubscriptionStatus `gorm:"type:premier_subscription_status;not null;default:'PENDING'" json:"status"`
	CurrentPeriodStart time.Time          `gorm:"type:timestamptz;not null" json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `gorm:"type:timestamptz;not null;index" json:"current_period_end"`
	CancelAt           *time.Time         `gorm:"type:timestamptz" json:"cancel_at,omitempty"`
	AutoRenewal        bool               `gorm:"not null" json:"auto_renewal"`
	PaymentMethod      string             `gorm:"size:50" json:"payment_method"`
	ProviderCustomerID *string            `gorm:"size:100" json:"provider_customer_id,omitempty"`
	CreatedAt          time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:now()" json:"updated_at"`

	// Relations
	Invoices []Invoice `gorm:"foreignKey:SubscriptionID" json:"invoices,omitempty"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
