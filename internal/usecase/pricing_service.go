package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/pricing"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"go.uber.org/zap"
)

// PricingService prices plans and publishes the plan catalog
type PricingService struct {
	orgRepo          repository.OrganizationRepository
	catalog          []entity.Plan
	freeSlotsPerYear int
	logger           *zap.Logger
}

// NewPricingService creates a pricing service. catalog carries the display
// metadata of each tier; prices, features and free slots are filled in here.
func NewPricingService(
	orgRepo repository.OrganizationRepository,
	catalog []entity.Plan,
	freeSlotsPerYear int,
	logger *zap.Logger,
) *PricingService {
	return &PricingService{
		orgRepo:          orgRepo,
		catalog:          catalog,
		freeSlotsPerYear: freeSlotsPerYear,
		logger:           logger,
	}
}

// Quote prices tierName for a new contract
func (s *PricingService) Quote(tierName string, isExistingPrintSubscriber bool) (*pricing.Quote, error) {
	tier, ok := entitlement.ParsePlanTier(tierName)
	if !ok {
		return nil, domainErrors.ErrInvalidPlanTier
	}
	quote, _ := pricing.NewQuote(tier, isExistingPrintSubscriber)
	return &quote, nil
}

// QuoteForOrganization prices the organization's current plan. Stored
// prices and discount percentages that disagree with the rule are logged,
// never used.
func (s *PricingService) QuoteForOrganization(ctx context.Context, organizationID string) (*pricing.Quote, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, domainErrors.ErrOrganizationNotFound
	}

	quote, ok := pricing.NewQuote(org.PlanTier, org.IsExistingPrintSubscriber)
	if !ok {
		return nil, domainErrors.ErrInvalidPlanTier
	}

	implied := pricing.ImpliedDiscountPercent(quote.BasePrice, org.IsExistingPrintSubscriber)
	// a print subscriber stored with 0% is still a mismatch
	checkPercent := org.IsExistingPrintSubscriber || !org.DiscountPercent.IsZero()
	if checkPercent && !org.DiscountPercent.Round(2).Equal(implied) {
		s.logger.Warn("discount_percent_inconsistent",
			zap.String("organization_id", organizationID),
			zap.String("plan_tier", string(org.PlanTier)),
			zap.String("stored_discount_percent", org.DiscountPercent.String()),
			zap.String("implied_discount_percent", implied.String()))
	}
	if !org.FinalPrice.IsZero() && !org.FinalPrice.Equal(quote.FinalPrice) {
		s.logger.Warn("final_price_inconsistent",
			zap.String("organization_id", organizationID),
			zap.String("stored_final_price", org.FinalPrice.String()),
			zap.String("computed_final_price", quote.FinalPrice.String()))
	}

	return &quote, nil
}

// Plans returns the catalog with prices and features, ordered for display
func (s *PricingService) Plans() []entity.Plan {
	plans := make([]entity.Plan, 0, len(s.catalog))
	for _, entry := range s.catalog {
		quote, ok := pricing.NewQuote(entry.Tier, true)
		if !ok {
			continue
		}
		plan := entry
		plan.BasePrice = quote.BasePrice
		discounted := quote.FinalPrice
		plan.FinalPrice = &discounted
		plan.Features = includedFeatures(entry.Tier)
		if entry.Tier == entitlement.PlanTierExpert {
			plan.FreeSlots = s.freeSlotsPerYear
		}
		plans = append(plans, plan)
	}
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].SortOrder < plans[j].SortOrder })
	return plans
}

// includedFeatures lists the features a plain member of tier can use
func includedFeatures(tier entitlement.PlanTier) []entitlement.Feature {
	ctx := entitlement.Context{PlanTier: tier, Role: entitlement.RoleMember}
	var out []entitlement.Feature
	for _, f := range entitlement.Features() {
		if entitlement.CanAccess(f, ctx) {
			out = append(out, f)
		}
	}
	return out
}
