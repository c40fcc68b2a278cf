package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
)

// Organization is a subscribing company
type Organization struct {
	ID                        string               `json:"id"`
	Name                      string               `json:"name"`
	PlanTier                  entitlement.PlanTier `json:"plan_tier"`
	Status                    SubscriptionStatus   `json:"status"`
	ContractStartDate         time.Time            `json:"contract_start_date"`
	AutoRenewal               bool                 `json:"auto_renewal"`
	DiscountPercent           decimal.Decimal      `json:"discount_percent"`
	BasePrice                 decimal.Decimal      `json:"base_price"`
	FinalPrice                decimal.Decimal      `json:"final_price"`
	IsExistingPrintSubscriber bool                 `json:"is_existing_print_subscriber"`
	// IsOperatingCompany marks the publisher's own organization.
	IsOperatingCompany bool      `json:"is_operating_company"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Member is a user belonging to one organization
type Member struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Role           entitlement.Role `json:"role"`
	CreatedAt      time.Time        `json:"created_at"`
}

// FreeSlotCounter is the annual allotment of no-cost qualification enrollments
type FreeSlotCounter struct {
	OrganizationID string    `json:"organization_id"`
	Used           int       `json:"used"`
	Total          int       `json:"total"`
	LastResetAt    time.Time `json:"last_reset_at"`
}

// Validate checks 0 <= Used <= Total.
func (c *FreeSlotCounter) Validate() error {
	if c.Used < 0 || c.Total < 0 {
		return fmt.Errorf("free slot counter has negative values (used=%d total=%d)", c.Used, c.Total)
	}
	if c.Used > c.Total {
		return fmt.Errorf("free slot counter used %d exceeds total %d", c.Used, c.Total)
	}
	return nil
}
