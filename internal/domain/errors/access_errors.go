package errors

import (
	"fmt"
)

// AccessDeniedError is returned when a member's organization does not cover a feature
type AccessDeniedError struct {
	Feature        string
	OrganizationID string
	PlanTier       string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("feature %s is not included in plan %s (organization: %s)",
		e.Feature, e.PlanTier, e.OrganizationID)
}

// NewAccessDeniedError creates a new AccessDeniedError
func NewAccessDeniedError(feature, organizationID, planTier string) *AccessDeniedError {
	return &AccessDeniedError{
		Feature:        feature,
		OrganizationID: organizationID,
		PlanTier:       planTier,
	}
}

// FreeSlotExhaustedError is returned when an organization has used its annual free slots
type FreeSlotExhaustedError struct {
	Used  int
	Total int
}

func (e *FreeSlotExhaustedError) Error() string {
	return fmt.Sprintf("%s: used %d of %d", ErrNoFreeSlotAvailable, e.Used, e.Total)
}

// Is lets errors.Is match ErrNoFreeSlotAvailable
func (e *FreeSlotExhaustedError) Is(target error) bool {
	return target == ErrNoFreeSlotAvailable
}

// NewFreeSlotExhaustedError creates a new FreeSlotExhaustedError
func NewFreeSlotExhaustedError(used, total int) *FreeSlotExhaustedError {
	return &FreeSlotExhaustedError{
		Used:  used,
		Total: total,
	}
}
