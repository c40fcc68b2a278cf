package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
)

// SubscriptionStatus is the lifecycle state shared by an organization and its subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription belongs to exactly one organization and is never deleted.
// Cancellation is a transition to SubscriptionStatusCancelled.
type Subscription struct {
	ID                 string               `json:"id"`
	OrganizationID     string               `json:"organization_id"`
	PlanTier           entitlement.PlanTier `json:"plan_tier"`
	Status             SubscriptionStatus   `json:"status"`
	CurrentPeriodStart time.Time            `json:"current_period_start"`
	CurrentPeriodEnd   time.Time            `json:"current_period_end"`
	CancelAt           *time.Time           `json:"cancel_at,omitempty"`
	AutoRenewal        bool                 `json:"auto_renewal"`
	PaymentMethod      string               `json:"payment_method"`
	ProviderCustomerID string               `json:"provider_customer_id,omitempty"`
	Invoices           []Invoice            `json:"invoices,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// Validate checks the period and cancellation invariants.
func (s *Subscription) Validate() error {
	if s.CurrentPeriodStart.IsZero() {
		return fmt.Errorf("current period start is missing")
	}
	if s.CurrentPeriodEnd.IsZero() {
		return fmt.Errorf("current period end is missing")
	}
	if s.CurrentPeriodEnd.Before(s.CurrentPeriodStart) {
		return fmt.Errorf("current period end %s is before start %s",
			s.CurrentPeriodEnd.Format(time.RFC3339), s.CurrentPeriodStart.Format(time.RFC3339))
	}
	if s.CancelAt != nil {
		if s.CancelAt.Before(s.CurrentPeriodStart) || s.CancelAt.After(s.CurrentPeriodEnd) {
			return fmt.Errorf("cancel_at %s is outside the current period", s.CancelAt.Format(time.RFC3339))
		}
	}
	return nil
}

// InvoiceStatus is either paid or open
type InvoiceStatus string

const (
	InvoiceStatusPaid InvoiceStatus = "paid"
	InvoiceStatusOpen InvoiceStatus = "open"
)

// Invoice is a billing document issued for a subscription period
type Invoice struct {
	Number    string          `json:"number"`
	Amount    decimal.Decimal `json:"amount"`
	Status    InvoiceStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	DueDate   time.Time       `json:"due_date"`
}
