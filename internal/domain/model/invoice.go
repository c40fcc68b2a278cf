package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice represents a billing document for a subscription period
type Invoice struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SubscriptionID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"subscription_id"`
	Number            string          `gorm:"not null;size:50;uniqueIndex" json:"number"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,0);not null" json:"amount"`
	Status            string          `gorm:"not null;size:10;default:'open'" json:"status"`
	ProviderInvoiceID *string         `gorm:"size:100;uniqueIndex" json:"provider_invoice_id,omitempty"`
	CreatedAt         time.Time       `gorm:"type:timestamptz;not null" json:"created_at"`
	PaidAt            *time.Time      `gorm:"type:timestamptz" json:"paid_at,omitempty"`
	DueDate           time.Time       `gorm:"type:timestamptz;not null" json:"due_date"`
}

// TableName specifies the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}
