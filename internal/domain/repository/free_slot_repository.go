package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

type FreeSlotRepository interface {
	// GetByOrganizationID returns nil, nil when the organization has no counter
	GetByOrganizationID(ctx context.Context, organizationID string) (*entity.FreeSlotCounter, error)

	// Consume increments the used count under a row lock. When resetAt is set the
	// counter is first reset to 0 as of resetAt. Returns FreeSlotExhaustedError
	// when no slot is left.
	Consume(ctx context.Context, organizationID string, resetAt *time.Time) (*entity.FreeSlotCounter, error)
}
