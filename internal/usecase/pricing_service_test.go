package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
)

func TestPricingService_Quote(t *testing.T) {
	service := usecase.NewPricingService(new(MockOrganizationRepository), nil, 3, zap.NewNop())

	tests := []struct {
		tier     string
		print    bool
		expected string
	}{
		{"STANDARD", true, "88000"},
		{"EXPERT", true, "198000"},
		{"standard", false, "110000"},
		{"expert", false, "220000"},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			q, err := service.Quote(tt.tier, tt.print)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q.FinalPrice.String())
			assert.Equal(t, "JPY", q.Currency)
		})
	}

	_, err := service.Quote("GOLD", false)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPlanTier)
}

func TestPricingService_QuoteForOrganization_FlagsInconsistentPercent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	orgRepo := new(MockOrganizationRepository)
	service := usecase.NewPricingService(orgRepo, nil, 3, zap.New(core))

	org := expertOrganization()
	// 20% would be the STANDARD figure; the fixed amount is 10% of EXPERT
	org.DiscountPercent = decimal.NewFromInt(20)
	orgRepo.On("GetByID", context.Background(), orgID).Return(org, nil)

	q, err := service.QuoteForOrganization(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, "198000", q.FinalPrice.String())

	require.Equal(t, 1, logs.FilterMessage("discount_percent_inconsistent").Len())
	assert.Zero(t, logs.FilterMessage("final_price_inconsistent").Len())
}

func TestPricingService_QuoteForOrganization_Consistent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	orgRepo := new(MockOrganizationRepository)
	service := usecase.NewPricingService(orgRepo, nil, 3, zap.New(core))

	org := expertOrganization()
	org.DiscountPercent = decimal.NewFromInt(10)
	orgRepo.On("GetByID", context.Background(), orgID).Return(org, nil)

	_, err := service.QuoteForOrganization(context.Background(), orgID)
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestPricingService_QuoteForOrganization_SubscriberStoredWithoutDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("print subscriber at 0% is flagged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		orgRepo := new(MockOrganizationRepository)
		service := usecase.NewPricingService(orgRepo, nil, 3, zap.New(core))

		org := expertOrganization()
		org.DiscountPercent = decimal.Zero
		orgRepo.On("GetByID", ctx, orgID).Return(org, nil)

		_, err := service.QuoteForOrganization(ctx, orgID)
		require.NoError(t, err)

		entries := logs.FilterMessage("discount_percent_inconsistent").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "0", entries[0].ContextMap()["stored_discount_percent"])
		assert.Equal(t, "10", entries[0].ContextMap()["implied_discount_percent"])
	})

	t.Run("non-subscriber at 0% is consistent", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		orgRepo := new(MockOrganizationRepository)
		service := usecase.NewPricingService(orgRepo, nil, 3, zap.New(core))

		org := expertOrganization()
		org.IsExistingPrintSubscriber = false
		org.FinalPrice = decimal.NewFromInt(220000)
		orgRepo.On("GetByID", ctx, orgID).Return(org, nil)

		_, err := service.QuoteForOrganization(ctx, orgID)
		require.NoError(t, err)
		assert.Zero(t, logs.Len())
	})
}

func TestPricingService_Plans(t *testing.T) {
	catalog := []entity.Plan{
		{Tier: entitlement.PlanTierExpert, Name: "Expert", SortOrder: 2},
		{Tier: entitlement.PlanTierStandard, Name: "Standard", SortOrder: 1},
	}
	service := usecase.NewPricingService(new(MockOrganizationRepository), catalog, 3, zap.NewNop())

	plans := service.Plans()
	require.Len(t, plans, 2)

	assert.Equal(t, entitlement.PlanTierStandard, plans[0].Tier)
	assert.Equal(t, "110000", plans[0].BasePrice.String())
	assert.Equal(t, "88000", plans[0].FinalPrice.String())
	assert.Len(t, plans[0].Features, 5)
	assert.Zero(t, plans[0].FreeSlots)

	assert.Equal(t, entitlement.PlanTierExpert, plans[1].Tier)
	assert.Len(t, plans[1].Features, 8)
	assert.Equal(t, 3, plans[1].FreeSlots)
}
