package errors

import "errors"

var (
	// ErrOrganizationNotFound indicates that the organization does not exist
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrMemberNotFound indicates that the member does not exist
	ErrMemberNotFound = errors.New("member not found")

	// ErrSubscriptionNotFound indicates that the organization has no subscription record
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrOrganizationInactive indicates an organization that is not ACTIVE or whose
	// scheduled cancellation date has passed
	ErrOrganizationInactive = errors.New("organization subscription is not active")

	// ErrSubscriptionCancelled indicates that a command needs a subscription that is not cancelled
	ErrSubscriptionCancelled = errors.New("subscription is cancelled")

	// ErrCancelAtOutOfPeriod indicates a requested cancellation date outside the current period
	ErrCancelAtOutOfPeriod = errors.New("cancellation date must fall within the current period")

	// ErrCancelAtInPast indicates a cancellation scheduled for a moment already gone
	ErrCancelAtInPast = errors.New("cancellation date must not be in the past")

	// ErrInvalidPlanTier indicates a plan tier other than STANDARD or EXPERT
	ErrInvalidPlanTier = errors.New("invalid plan tier")

	// ErrPlanUnchanged indicates a plan change to the tier already in effect
	ErrPlanUnchanged = errors.New("organization is already on the requested plan")

	// ErrNoFreeSlotAvailable indicates that the annual free slots are used up
	ErrNoFreeSlotAvailable = errors.New("no free slot available")

	// ErrInvalidID indicates an identifier that is not a UUID
	ErrInvalidID = errors.New("invalid id")

	// ErrMemberOrganizationMismatch indicates a token whose organization differs from the member's
	ErrMemberOrganizationMismatch = errors.New("member does not belong to the token organization")
)
