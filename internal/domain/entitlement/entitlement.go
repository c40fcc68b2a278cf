// Package entitlement decides which dashboard features an organization may use.
//
// The resolver is a pure function of an explicit Context. Callers assemble the
// context from the member's session and organization record; nothing here reads
// ambient state.
package entitlement

import "strings"

// PlanTier is the subscription level of an organization.
type PlanTier string

const (
	PlanTierStandard PlanTier = "STANDARD"
	PlanTierExpert   PlanTier = "EXPERT"
)

// Valid reports whether t is a known tier.
func (t PlanTier) Valid() bool {
	return t == PlanTierStandard || t == PlanTierExpert
}

// ParsePlanTier accepts either case ("expert", "EXPERT").
func ParsePlanTier(s string) (PlanTier, bool) {
	t := PlanTier(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Role is a member's role inside their organization.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ParseRole accepts either case and defaults to false for anything else.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r == RoleAdmin || r == RoleMember
}

// Context is everything the resolver needs to make a decision.
type Context struct {
	PlanTier                PlanTier
	Role                    Role
	IsOperatingCompanyStaff bool
}

// CanAccess reports whether a caller described by ctx may use feature f.
//
// Operating-company staff always pass. Otherwise the feature's minimum tier
// decides: STANDARD features are open to every organization, EXPERT features
// only to EXPERT organizations. Role never changes the outcome. Unknown
// features are denied.
func CanAccess(f Feature, ctx Context) bool {
	if ctx.IsOperatingCompanyStaff {
		return true
	}

	required, ok := RequiredTier(f)
	if !ok {
		return false
	}

	switch required {
	case PlanTierStandard:
		return true
	case PlanTierExpert:
		return ctx.PlanTier == PlanTierExpert
	default:
		return false
	}
}

// Resolve evaluates every known feature for ctx.
func Resolve(ctx Context) map[Feature]bool {
	out := make(map[Feature]bool, len(featureTiers))
	for _, f := range Features() {
		out[f] = CanAccess(f, ctx)
	}
	return out
}
