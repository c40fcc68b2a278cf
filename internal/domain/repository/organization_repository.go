package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

// OnboardingRecords are created together in one transaction
type OnboardingRecords struct {
	Organization *entity.Organization
	Subscription *entity.Subscription
	FreeSlots    *entity.FreeSlotCounter
	Admin        *entity.Member
}

// PlanChange carries the values that move together when an organization changes tier
type PlanChange struct {
	OrganizationID string
	PlanTier       entitlement.PlanTier
	BasePrice      decimal.Decimal
	FinalPrice     decimal.Decimal
	FreeSlotTotal  int
}

type OrganizationRepository interface {
	// GetByID returns nil, nil when the organization does not exist
	GetByID(ctx context.Context, id string) (*entity.Organization, error)

	// Onboard stores the organization, its subscription, free-slot counter and first admin atomically
	Onboard(ctx context.Context, records OnboardingRecords) error

	// ChangePlan updates the organization, subscription and free-slot total atomically
	ChangePlan(ctx context.Context, change PlanChange) error
}
