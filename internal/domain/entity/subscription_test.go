package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
)

func TestSubscription_Validate(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	sub := &Subscription{CurrentPeriodStart: start, CurrentPeriodEnd: end}
	assert.NoError(t, sub.Validate())

	sameInstant := &Subscription{CurrentPeriodStart: start, CurrentPeriodEnd: start}
	assert.NoError(t, sameInstant.Validate())

	reversed := &Subscription{CurrentPeriodStart: end, CurrentPeriodEnd: start}
	assert.Error(t, reversed.Validate())

	missingEnd := &Subscription{CurrentPeriodStart: start}
	assert.Error(t, missingEnd.Validate())

	inside := start.AddDate(0, 6, 0)
	sub.CancelAt = &inside
	assert.NoError(t, sub.Validate())

	atEnd := end
	sub.CancelAt = &atEnd
	assert.NoError(t, sub.Validate())

	after := end.Add(time.Second)
	sub.CancelAt = &after
	assert.Error(t, sub.Validate())
}

func TestFreeSlotCounter_Validate(t *testing.T) {
	assert.NoError(t, (&FreeSlotCounter{Used: 0, Total: 3}).Validate())
	assert.NoError(t, (&FreeSlotCounter{Used: 3, Total: 3}).Validate())
	assert.Error(t, (&FreeSlotCounter{Used: 4, Total: 3}).Validate())
	assert.Error(t, (&FreeSlotCounter{Used: -1, Total: 3}).Validate())
}

func TestSubscription_JSONRoundTripKeepsTimestamps(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	start := time.Date(2025, 4, 1, 0, 0, 0, 123456789, tokyo)
	end := time.Date(2026, 3, 31, 23, 59, 59, 999999999, tokyo)
	cancelAt := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)
	paidAt := time.Date(2025, 4, 2, 10, 30, 0, 0, time.UTC)

	original := Subscription{
		ID:                 "sub-1",
		OrganizationID:     "org-1",
		PlanTier:           entitlement.PlanTierExpert,
		Status:             SubscriptionStatusActive,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
		CancelAt:           &cancelAt,
		AutoRenewal:        true,
		PaymentMethod:      "invoice",
		Invoices: []Invoice{{
			Number:    "INV-0001",
			Amount:    decimal.NewFromInt(198000),
			Status:    InvoiceStatusPaid,
			CreatedAt: start,
			PaidAt:    &paidAt,
			DueDate:   start.AddDate(0, 1, 0),
		}},
		CreatedAt: start,
		UpdatedAt: start,
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Subscription
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assertSameTime := func(want, got time.Time) {
		t.Helper()
		assert.True(t, want.Equal(got), "want %s got %s", want, got)
		_, wantOffset := want.Zone()
		_, gotOffset := got.Zone()
		assert.Equal(t, wantOffset, gotOffset)
	}

	assertSameTime(original.CurrentPeriodStart, decoded.CurrentPeriodStart)
	assertSameTime(original.CurrentPeriodEnd, decoded.CurrentPeriodEnd)
	require.NotNil(t, decoded.CancelAt)
	assertSameTime(*original.CancelAt, *decoded.CancelAt)
	require.Len(t, decoded.Invoices, 1)
	assertSameTime(original.Invoices[0].CreatedAt, decoded.Invoices[0].CreatedAt)
	assertSameTime(*original.Invoices[0].PaidAt, *decoded.Invoices[0].PaidAt)
	assertSameTime(original.Invoices[0].DueDate, decoded.Invoices[0].DueDate)
	assert.True(t, original.Invoices[0].Amount.Equal(decoded.Invoices[0].Amount))
	assert.Equal(t, original.PlanTier, decoded.PlanTier)
	assert.Equal(t, original.Status, decoded.Status)
}

func TestPageInvoices(t *testing.T) {
	invoices := make([]Invoice, 45)
	for i := range invoices {
		invoices[i].Number = string(rune('A' + i%26))
	}

	p := PaginationParams{Page: 3, Limit: 20}
	p.Validate()
	page := PageInvoices(invoices, p)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, int64(45), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	p = PaginationParams{Page: 9, Limit: 20}
	page = PageInvoices(invoices, p)
	assert.Empty(t, page.Data)

	p = PaginationParams{}
	p.Validate()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)
}
