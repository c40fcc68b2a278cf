package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

func TestLastRenewalAnniversary(t *testing.T) {
	start := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before contract start", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), start},
		{"at contract start", start, start},
		{"within first year", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start},
		{"just before first anniversary", time.Date(2024, 4, 1, 8, 59, 59, 0, time.UTC), start},
		{"at first anniversary", time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)},
		{"in third year", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastRenewalAnniversary(start, tt.now))
		})
	}
}

func TestLastRenewalAnniversary_LeapDay(t *testing.T) {
	start := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		LastRenewalAnniversary(start, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		LastRenewalAnniversary(start, time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		NextRenewalAnniversary(start, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNextRenewalAnniversary(t *testing.T) {
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start, NextRenewalAnniversary(start, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), NextRenewalAnniversary(start, start))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		NextRenewalAnniversary(start, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEffectiveFreeSlotUsed_ResetsAtAnniversary(t *testing.T) {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	counter := entity.FreeSlotCounter{OrganizationID: "org-1", Used: 3, Total: 3, LastResetAt: start}

	anniversary := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, EffectiveFreeSlotUsed(counter, start, start))
	assert.Equal(t, 3, EffectiveFreeSlotUsed(counter, start, anniversary.Add(-time.Nanosecond)))
	assert.Equal(t, 0, EffectiveFreeSlotUsed(counter, start, anniversary))
	assert.Equal(t, 0, EffectiveFreeSlotUsed(counter, start, anniversary.Add(200*24*time.Hour)))

	// once the reset is persisted the stored count applies again
	counter.Used = 1
	counter.LastResetAt = anniversary
	assert.Equal(t, 1, EffectiveFreeSlotUsed(counter, start, anniversary.Add(time.Hour)))
	assert.False(t, NeedsFreeSlotReset(counter, start, anniversary.Add(time.Hour)))
}

func TestEffectiveFreeSlotUsed_DoesNotMutate(t *testing.T) {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	counter := entity.FreeSlotCounter{Used: 2, Total: 3, LastResetAt: start}

	_ = EffectiveFreeSlotUsed(counter, start, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, counter.Used)
	assert.Equal(t, start, counter.LastResetAt)
}

func TestOneYearAfter(t *testing.T) {
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), OneYearAfter(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), OneYearAfter(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}
