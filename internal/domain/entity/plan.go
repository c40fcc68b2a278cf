package entity

import (
	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
)

// Plan is a catalog entry shown on the public pricing page
type Plan struct {
	Tier        entitlement.PlanTier  `json:"tier" yaml:"tier"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description" yaml:"description"`
	BasePrice   decimal.Decimal       `json:"base_price" yaml:"-"`
	FinalPrice  *decimal.Decimal      `json:"print_subscriber_price,omitempty" yaml:"-"`
	Features    []entitlement.Feature `json:"features" yaml:"-"`
	FreeSlots   int                   `json:"free_slots_per_year" yaml:"-"`
	SortOrder   int                   `json:"sort_order" yaml:"sort_order"`
}
