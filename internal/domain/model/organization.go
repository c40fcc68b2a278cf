package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Organization represents a subscribing company
type Organization struct {
	ID                        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name                      string             `gorm:"not null;size:200" json:"name"`
	PlanTier                  string             `gorm:"not null;size:20" json:"plan_tier"`
	Status                    SubscriptionStatus `gorm:"type:premier_subscription_status;not null;default:'PENDING'" json:"status"`
	ContractStartDate         time.Time          `gorm:"type:timestamptz;not null" json:"contract_start_date"`
	AutoRenewal               bool               `gorm:"not null" json:"auto_renewal"`
	DiscountPercent           decimal.Decimal    `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	BasePrice                 decimal.Decimal    `gorm:"type:numeric(12,0);not null" json:"base_price"`
	FinalPrice                decimal.Decimal    `gorm:"type:numeric(12,0);not null" json:"final_price"`
	IsExistingPrintSubscriber bool               `gorm:"not null;default:false" json:"is_existing_print_subscriber"`
	IsOperatingCompany        bool               `gorm:"not null;default:false" json:"is_operating_company"`
	CreatedAt                 time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt                 time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// Member represents a user of an organization
type Member struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email          string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name           string    `gorm:"size:200" json:"name"`
	Role           string    `gorm:"not null;size:20;default:'MEMBER'" json:"role"`
	CreatedAt      time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}

// FreeSlotCounter stores the annual qualification free-slot usage of an organization
type FreeSlotCounter struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"organization_id"`
	Used           int       `gorm:"not null;default:0" json:"used"`
	Total          int       `gorm:"not null;default:0" json:"total"`
	LastResetAt    time.Time `gorm:"type:timestamptz;not null" json:"last_reset_at"`
	UpdatedAt      time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (FreeSlotCounter) TableName() string {
	return "free_slot_counters"
}
