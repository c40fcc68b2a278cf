package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
)

func TestComputeFinalPrice(t *testing.T) {
	tests := []struct {
		name      string
		base      int64
		tier      entitlement.PlanTier
		printSub  bool
		wantFinal int64
	}{
		{"standard print subscriber", 110000, entitlement.PlanTierStandard, true, 88000},
		{"expert print subscriber", 220000, entitlement.PlanTierExpert, true, 198000},
		{"standard without discount", 110000, entitlement.PlanTierStandard, false, 110000},
		{"expert without discount", 220000, entitlement.PlanTierExpert, false, 220000},
		{"discount larger than base clamps to zero", 10000, entitlement.PlanTierStandard, true, 0},
		{"discount equal to base", 22000, entitlement.PlanTierStandard, true, 0},
		{"zero base", 0, entitlement.PlanTierExpert, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFinalPrice(decimal.NewFromInt(tt.base), tt.tier, tt.printSub)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.wantFinal)), "got %s want %d", got, tt.wantFinal)
		})
	}
}

func TestBasePrice(t *testing.T) {
	p, ok := BasePrice(entitlement.PlanTierStandard)
	require.True(t, ok)
	assert.Equal(t, "110000", p.String())

	p, ok = BasePrice(entitlement.PlanTierExpert)
	require.True(t, ok)
	assert.Equal(t, "220000", p.String())

	_, ok = BasePrice("PLATINUM")
	assert.False(t, ok)
}

func TestNewQuote(t *testing.T) {
	q, ok := NewQuote(entitlement.PlanTierExpert, true)
	require.True(t, ok)
	assert.Equal(t, entitlement.PlanTierExpert, q.Tier)
	assert.Equal(t, "220000", q.BasePrice.String())
	assert.Equal(t, "22000", q.Discount.String())
	assert.Equal(t, "198000", q.FinalPrice.String())
	assert.Equal(t, "JPY", q.Currency)

	q, ok = NewQuote(entitlement.PlanTierStandard, false)
	require.True(t, ok)
	assert.True(t, q.Discount.IsZero())

	_, ok = NewQuote("", false)
	assert.False(t, ok)
}

func TestImpliedDiscountPercent(t *testing.T) {
	assert.Equal(t, "20", ImpliedDiscountPercent(decimal.NewFromInt(110000), true).String())
	assert.Equal(t, "10", ImpliedDiscountPercent(decimal.NewFromInt(220000), true).String())
	assert.True(t, ImpliedDiscountPercent(decimal.NewFromInt(220000), false).IsZero())
	assert.True(t, ImpliedDiscountPercent(decimal.Zero, true).IsZero())
}
