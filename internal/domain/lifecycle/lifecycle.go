// Package lifecycle derives display and alerting facts from a subscription
// record and a reference time. Nothing here mutates its inputs.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

// ReminderWindowDays is the width of the renewal-reminder window.
const ReminderWindowDays = 30

const day = 24 * time.Hour

// ErrInvalidSubscriptionState marks a subscription record whose timestamps are
// missing or inconsistent. It is a data-integrity problem, not a retryable one.
var ErrInvalidSubscriptionState = errors.New("invalid subscription state")

func checkSubscription(sub *entity.Subscription) error {
	if sub == nil {
		return fmt.Errorf("%w: subscription is nil", ErrInvalidSubscriptionState)
	}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubscriptionState, err)
	}
	return nil
}

// DaysRemaining returns ceil((CurrentPeriodEnd - now) / 1 day). The result is
// negative once the period has ended and is returned as such.
func DaysRemaining(sub *entity.Subscription, now time.Time) (int, error) {
	if err := checkSubscription(sub); err != nil {
		return 0, err
	}
	return ceilDays(sub.CurrentPeriodEnd.Sub(now)), nil
}

// ceilDays rounds d up to whole days. Integer division truncates toward zero,
// which is already the ceiling for negative durations.
func ceilDays(d time.Duration) int {
	q := d / day
	if d%day > 0 {
		q++
	}
	return int(q)
}

// DisplayDaysRemaining clamps an expired count to 0 for rendering.
func DisplayDaysRemaining(days int) int {
	if days < 0 {
		return 0
	}
	return days
}

// IsExpiringSoon reports 0 <= days <= ReminderWindowDays.
func IsExpiringSoon(days int) bool {
	return days >= 0 && days <= ReminderWindowDays
}

// IsWithinCancelWindow reports whether a cancellation is scheduled in the future,
// i.e. the subscription is still serviceable but will end at CancelAt.
func IsWithinCancelWindow(sub *entity.Subscription, now time.Time) bool {
	if sub == nil || sub.CancelAt == nil {
		return false
	}
	return now.Before(*sub.CancelAt)
}

// Status bundles everything the dashboard shows about a subscription.
type Status struct {
	DaysRemaining        int        `json:"days_remaining"`
	DisplayDaysRemaining int        `json:"display_days_remaining"`
	IsExpiringSoon       bool       `json:"is_expiring_soon"`
	IsExpired            bool       `json:"is_expired"`
	IsWithinCancelWindow bool       `json:"is_within_cancel_window"`
	CancelAt             *time.Time `json:"cancel_at,omitempty"`
	FreeSlotsUsed        int        `json:"free_slots_used"`
	FreeSlotsTotal       int        `json:"free_slots_total"`
	FreeSlotsRemaining   int        `json:"free_slots_remaining"`
	NextResetAt          time.Time  `json:"next_reset_at"`
}

// Evaluate computes the full Status. counter may be nil for organizations
// without a free-slot allotment.
func Evaluate(sub *entity.Subscription, counter *entity.FreeSlotCounter, contractStart, now time.Time) (Status, error) {
	days, err := DaysRemaining(sub, now)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		DaysRemaining:        days,
		DisplayDaysRemaining: DisplayDaysRemaining(days),
		IsExpiringSoon:       IsExpiringSoon(days),
		IsExpired:            days < 0,
		IsWithinCancelWindow: IsWithinCancelWindow(sub, now),
		CancelAt:             sub.CancelAt,
		NextResetAt:          NextRenewalAnniversary(contractStart, now),
	}

	if counter != nil {
		used := EffectiveFreeSlotUsed(*counter, contractStart, now)
		st.FreeSlotsUsed = used
		st.FreeSlotsTotal = counter.Total
		st.FreeSlotsRemaining = counter.Total - used
		if st.FreeSlotsRemaining < 0 {
			st.FreeSlotsRemaining = 0
		}
	}

	return st, nil
}
