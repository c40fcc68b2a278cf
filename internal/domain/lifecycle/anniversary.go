package lifecycle

import (
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

// LastRenewalAnniversary returns the most recent yearly anniversary of
// contractStart that is not after now. Before the contract starts it returns
// contractStart itself.
func LastRenewalAnniversary(contractStart, now time.Time) time.Time {
	if now.Before(contractStart) {
		return contractStart
	}

	years := now.Year() - contractStart.Year()
	candidate := addYears(contractStart, years)
	if candidate.After(now) {
		candidate = addYears(contractStart, years-1)
	}
	return candidate
}

// NextRenewalAnniversary returns the first anniversary strictly after now.
func NextRenewalAnniversary(contractStart, now time.Time) time.Time {
	if now.Before(contractStart) {
		return contractStart
	}
	last := LastRenewalAnniversary(contractStart, now)
	years := last.Year() - contractStart.Year()
	return addYears(contractStart, years+1)
}

// EffectiveFreeSlotUsed returns the used count that applies at now. When a
// renewal anniversary has passed since the counter was last reset the count is
// 0; persisting that reset is left to the caller.
func EffectiveFreeSlotUsed(counter entity.FreeSlotCounter, contractStart, now time.Time) int {
	if NeedsFreeSlotReset(counter, contractStart, now) {
		return 0
	}
	return counter.Used
}

// NeedsFreeSlotReset reports whether the stored counter predates the current
// renewal period.
func NeedsFreeSlotReset(counter entity.FreeSlotCounter, contractStart, now time.Time) bool {
	anniversary := LastRenewalAnniversary(contractStart, now)
	return !now.Before(anniversary) && counter.LastResetAt.Before(anniversary)
}

// addYears moves t by n calendar years. Feb 29 lands on Feb 28 in non-leap years
// instead of rolling into March.
func addYears(t time.Time, n int) time.Time {
	year := t.Year() + n
	month, d := t.Month(), t.Day()
	if month == time.February && d == 29 && !isLeap(year) {
		d = 28
	}
	return time.Date(year, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// OneYearAfter returns the end of a one-year period starting at start.
func OneYearAfter(start time.Time) time.Time {
	return addYears(start, 1)
}
