package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

// Renewal describes the next period of a subscription
type Renewal struct {
	OrganizationID string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Invoice        entity.Invoice
}

type SubscriptionRepository interface {
	// GetByOrganizationID returns nil, nil when no subscription exists
	GetByOrganizationID(ctx context.Context, organizationID string) (*entity.Subscription, error)
	ListByStatus(ctx context.Context, status entity.SubscriptionStatus) ([]*entity.Subscription, error)
	ScheduleCancel(ctx context.Context, organizationID string, cancelAt time.Time) error
	// Cancel marks the subscription and organization CANCELLED; rows are never deleted
	Cancel(ctx context.Context, organizationID string) error
	// Renew advances the period and records the invoice atomically. The free-slot
	// counter is not touched; it resets on the contract anniversary.
	Renew(ctx context.Context, renewal Renewal) error
	UpsertInvoices(ctx context.Context, subscriptionID string, invoices []entity.Invoice) error
}
