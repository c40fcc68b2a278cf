package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"github.com/wekeepgrowing/premier-subscription/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// Caller is an authenticated member with the entitlement context derived from
// their organization
type Caller struct {
	Member       *entity.Member
	Organization *entity.Organization
	Entitlement  entitlement.Context
}

// EntitlementService answers feature access questions for members
type EntitlementService struct {
	memberRepo       repository.MemberRepository
	orgRepo          repository.OrganizationRepository
	subscriptionRepo repository.SubscriptionRepository
	logger           *zap.Logger
	now              func() time.Time
}

// NewEntitlementService creates a new entitlement service instance
func NewEntitlementService(
	memberRepo repository.MemberRepository,
	orgRepo repository.OrganizationRepository,
	subscriptionRepo repository.SubscriptionRepository,
	logger *zap.Logger,
) *EntitlementService {
	return &EntitlementService{
		memberRepo:       memberRepo,
		orgRepo:          orgRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
		now:              time.Now,
	}
}

// WithClock replaces the clock used to judge scheduled cancellations
func (s *EntitlementService) WithClock(now func() time.Time) *EntitlementService {
	s.now = now
	return s
}

// ResolveCaller loads the member and organization behind a token. When
// organizationID is set it must match the member's organization.
// Organizations that are not ACTIVE, or whose scheduled cancellation date has
// passed, are rejected with ErrOrganizationInactive.
func (s *EntitlementService) ResolveCaller(ctx context.Context, memberID, organizationID string) (*Caller, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, domainErrors.ErrMemberNotFound
	}
	if organizationID != "" && organizationID != member.OrganizationID {
		s.logger.Warn("Token organization does not match member",
			zap.String("member_id", memberID),
			zap.String("token_organization_id", organizationID),
			zap.String("organization_id", member.OrganizationID))
		return nil, domainErrors.ErrMemberOrganizationMismatch
	}

	org, err := s.orgRepo.GetByID(ctx, member.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, domainErrors.ErrOrganizationNotFound
	}
	if !org.IsOperatingCompany {
		if org.Status != entity.SubscriptionStatusActive {
			return nil, domainErrors.ErrOrganizationInactive
		}
		if err := s.checkScheduledCancellation(ctx, org); err != nil {
			return nil, err
		}
	}

	return &Caller{
		Member:       member,
		Organization: org,
		Entitlement: entitlement.Context{
			PlanTier:                org.PlanTier,
			Role:                    member.Role,
			IsOperatingCompanyStaff: org.IsOperatingCompany,
		},
	}, nil
}

// checkScheduledCancellation rejects an organization whose cancellation date
// has passed but which the reminder sweep has not closed yet. Scheduling a
// cancellation always turns auto-renewal off, so organizations that still
// renew automatically have nothing to check.
func (s *EntitlementService) checkScheduledCancellation(ctx context.Context, org *entity.Organization) error {
	if org.AutoRenewal {
		return nil
	}
	sub, err := s.subscriptionRepo.GetByOrganizationID(ctx, org.ID)
	if err != nil {
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil || sub.CancelAt == nil || s.now().Before(*sub.CancelAt) {
		return nil
	}
	s.logger.Info("Access after scheduled cancellation",
		zap.String("organization_id", org.ID),
		zap.Time("cancel_at", *sub.CancelAt))
	return domainErrors.ErrOrganizationInactive
}

// ContextFor builds the explicit entitlement context for a member
func (s *EntitlementService) ContextFor(ctx context.Context, memberID string) (entitlement.Context, error) {
	caller, err := s.ResolveCaller(ctx, memberID, "")
	if err != nil {
		return entitlement.Context{}, err
	}
	return caller.Entitlement, nil
}

// CheckAccess decides whether the member may use featureName. Unknown feature
// names are denied and logged as a configuration problem.
func (s *EntitlementService) CheckAccess(ctx context.Context, memberID, featureName string) (*dto.AccessDecision, error) {
	entCtx, err := s.ContextFor(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.Decide(entCtx, featureName), nil
}

// Decide evaluates featureName for an already resolved context
func (s *EntitlementService) Decide(entCtx entitlement.Context, featureName string) *dto.AccessDecision {
	decision := &dto.AccessDecision{
		Feature:  featureName,
		PlanTier: entCtx.PlanTier,
	}

	feature, ok := entitlement.ParseFeature(featureName)
	if !ok {
		s.logger.Warn("Access check for unknown feature",
			zap.String("feature", featureName),
			zap.String("plan_tier", string(entCtx.PlanTier)))
		metrics.EntitlementDecisionsTotal.WithLabelValues("unknown", "denied").Inc()
		return decision
	}

	required, _ := entitlement.RequiredTier(feature)
	decision.Known = true
	decision.RequiredTier = required
	decision.Allowed = entitlement.CanAccess(feature, entCtx)

	result := "denied"
	if decision.Allowed {
		result = "allowed"
	}
	metrics.EntitlementDecisionsTotal.WithLabelValues(feature.String(), result).Inc()

	return decision
}

// AccessMatrix evaluates every feature for the member
func (s *EntitlementService) AccessMatrix(ctx context.Context, memberID string) (*dto.AccessMatrix, error) {
	entCtx, err := s.ContextFor(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return Matrix(entCtx), nil
}

// Matrix renders the resolver output for a context
func Matrix(entCtx entitlement.Context) *dto.AccessMatrix {
	resolved := entitlement.Resolve(entCtx)
	features := make(map[string]bool, len(resolved))
	for f, allowed := range resolved {
		features[f.String()] = allowed
	}
	return &dto.AccessMatrix{
		PlanTier:                entCtx.PlanTier,
		IsOperatingCompanyStaff: entCtx.IsOperatingCompanyStaff,
		Features:                features,
	}
}
