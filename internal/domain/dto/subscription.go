package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/lifecycle"
)

// OnboardRequest registers a new organization with its first administrator
type OnboardRequest struct {
	Name                      string    `json:"name" validate:"required,max=200"`
	PlanTier                  string    `json:"plan_tier" validate:"required"`
	ContractStartDate         time.Time `json:"contract_start_date" validate:"required"`
	IsExistingPrintSubscriber bool      `json:"is_existing_print_subscriber"`
	AutoRenewal               *bool     `json:"auto_renewal,omitempty"`
	PaymentMethod             string    `json:"payment_method" validate:"omitempty,oneof=invoice card bank_transfer"`
	ProviderCustomerID        string    `json:"provider_customer_id,omitempty" validate:"omitempty,max=255"`
	AdminEmail                string    `json:"admin_email" validate:"required,email"`
	AdminName                 string    `json:"admin_name" validate:"required,max=100"`
}

// OnboardResponse returns every record created by onboarding
type OnboardResponse struct {
	Organization *entity.Organization    `json:"organization"`
	Subscription *entity.Subscription    `json:"subscription"`
	FreeSlots    *entity.FreeSlotCounter `json:"free_slots"`
	Admin        *entity.Member          `json:"admin"`
}

// ScheduleCancelRequest sets the date a subscription ends
type ScheduleCancelRequest struct {
	CancelAt time.Time `json:"cancel_at" validate:"required"`
}

// ChangePlanRequest moves an organization to another tier
type ChangePlanRequest struct {
	PlanTier string `json:"plan_tier" validate:"required"`
}

// SubscriptionStatusView is the dashboard view of an organization's subscription
type SubscriptionStatusView struct {
	OrganizationID     string                    `json:"organization_id"`
	OrganizationName   string                    `json:"organization_name"`
	PlanTier           entitlement.PlanTier      `json:"plan_tier"`
	Status             entity.SubscriptionStatus `json:"status"`
	CurrentPeriodStart time.Time                 `json:"current_period_start"`
	CurrentPeriodEnd   time.Time                 `json:"current_period_end"`
	AutoRenewal        bool                      `json:"auto_renewal"`
	PaymentMethod      string                    `json:"payment_method"`
	BasePrice          decimal.Decimal           `json:"base_price"`
	FinalPrice         decimal.Decimal           `json:"final_price"`
	Lifecycle          lifecycle.Status          `json:"lifecycle"`
}

// FreeSlotView is the effective free-slot allotment at a point in time
type FreeSlotView struct {
	OrganizationID string    `json:"organization_id"`
	Used           int       `json:"used"`
	Total          int       `json:"total"`
	Remaining      int       `json:"remaining"`
	NextResetAt    time.Time `json:"next_reset_at"`
}

// AccessDecision is the outcome of one feature check
type AccessDecision struct {
	Feature      string               `json:"feature"`
	Allowed      bool                 `json:"allowed"`
	Known        bool                 `json:"known"`
	RequiredTier entitlement.PlanTier `json:"required_tier,omitempty"`
	PlanTier     entitlement.PlanTier `json:"plan_tier"`
}

// AccessMatrix lists the caller's access to every feature
type AccessMatrix struct {
	PlanTier                entitlement.PlanTier `json:"plan_tier"`
	IsOperatingCompanyStaff bool                 `json:"is_operating_company_staff"`
	Features                map[string]bool      `json:"features"`
}

// ReminderEvent is the payload published for expiring and expired subscriptions
type ReminderEvent struct {
	OrganizationID string     `json:"organization_id"`
	SubscriptionID string     `json:"subscription_id"`
	PlanTier       string     `json:"plan_tier"`
	DaysRemaining  int        `json:"days_remaining"`
	PeriodEnd      time.Time  `json:"period_end"`
	AutoRenewal    bool       `json:"auto_renewal"`
	CancelAt       *time.Time `json:"cancel_at,omitempty"`
}

// SweepResult summarizes one reminder sweep
type SweepResult struct {
	Checked      int `json:"checked"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
	Cancelled    int `json:"cancelled"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
}
