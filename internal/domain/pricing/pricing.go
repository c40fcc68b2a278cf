// Package pricing computes annual plan prices in yen, tax included.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
)

var (
	standardBasePrice = decimal.NewFromInt(110000)
	expertBasePrice   = decimal.NewFromInt(220000)

	// PrintSubscriberDiscount is the fixed reduction for organizations that
	// already subscribe to the printed newspaper. It applies to either tier.
	PrintSubscriberDiscount = decimal.NewFromInt(22000)
)

// BasePrice returns the list price of tier. ok is false for unknown tiers.
func BasePrice(tier entitlement.PlanTier) (decimal.Decimal, bool) {
	switch tier {
	case entitlement.PlanTierStandard:
		return standardBasePrice, true
	case entitlement.PlanTierExpert:
		return expertBasePrice, true
	default:
		return decimal.Zero, false
	}
}

// ComputeFinalPrice subtracts the print-subscriber discount from basePrice when
// eligible. The result never goes below zero. The discount is the same for
// every tier.
func ComputeFinalPrice(basePrice decimal.Decimal, tier entitlement.PlanTier, isExistingPrintSubscriber bool) decimal.Decimal {
	price := basePrice
	if isExistingPrintSubscriber {
		price = price.Sub(PrintSubscriberDiscount)
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// Quote is a priced plan offer.
type Quote struct {
	Tier       entitlement.PlanTier `json:"tier"`
	BasePrice  decimal.Decimal      `json:"base_price"`
	Discount   decimal.Decimal      `json:"discount"`
	FinalPrice decimal.Decimal      `json:"final_price"`
	Currency   string               `json:"currency"`
}

// Currency is the ISO code every price is expressed in.
const Currency = "JPY"

// NewQuote prices tier from its list price.
func NewQuote(tier entitlement.PlanTier, isExistingPrintSubscriber bool) (Quote, bool) {
	base, ok := BasePrice(tier)
	if !ok {
		return Quote{}, false
	}
	final := ComputeFinalPrice(base, tier, isExistingPrintSubscriber)
	return Quote{
		Tier:       tier,
		BasePrice:  base,
		Discount:   base.Sub(final),
		FinalPrice: final,
		Currency:   Currency,
	}, true
}

// ImpliedDiscountPercent is the percentage the fixed discount represents on
// basePrice, rounded to two places. Used to spot stored percentages that
// disagree with the fixed amount.
func ImpliedDiscountPercent(basePrice decimal.Decimal, isExistingPrintSubscriber bool) decimal.Decimal {
	if !isExistingPrintSubscriber || basePrice.IsZero() {
		return decimal.Zero
	}
	final := ComputeFinalPrice(basePrice, "", true)
	return basePrice.Sub(final).Div(basePrice).Mul(decimal.NewFromInt(100)).Round(2)
}
