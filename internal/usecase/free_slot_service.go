package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/lifecycle"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"github.com/wekeepgrowing/premier-subscription/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// FreeSlotService manages the annual qualification free slots
type FreeSlotService struct {
	orgRepo      repository.OrganizationRepository
	freeSlotRepo repository.FreeSlotRepository
	logger       *zap.Logger
}

// NewFreeSlotService creates a new free-slot service instance
func NewFreeSlotService(
	orgRepo repository.OrganizationRepository,
	freeSlotRepo repository.FreeSlotRepository,
	logger *zap.Logger,
) *FreeSlotService {
	return &FreeSlotService{
		orgRepo:      orgRepo,
		freeSlotRepo: freeSlotRepo,
		logger:       logger,
	}
}

func (s *FreeSlotService) load(ctx context.Context, organizationID string) (*entity.Organization, *entity.FreeSlotCounter, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, nil, domainErrors.ErrOrganizationNotFound
	}

	counter, err := s.freeSlotRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get free slot counter: %w", err)
	}
	if counter == nil {
		counter = &entity.FreeSlotCounter{OrganizationID: organizationID, LastResetAt: org.ContractStartDate}
	}
	return org, counter, nil
}

// Availability returns the effective allotment at now. A counter whose
// anniversary has passed reads as unused; nothing is written.
func (s *FreeSlotService) Availability(ctx context.Context, organizationID string, now time.Time) (*dto.FreeSlotView, error) {
	org, counter, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return view(org, counter, now), nil
}

func view(org *entity.Organization, counter *entity.FreeSlotCounter, now time.Time) *dto.FreeSlotView {
	used := lifecycle.EffectiveFreeSlotUsed(*counter, org.ContractStartDate, now)
	remaining := counter.Total - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.FreeSlotView{
		OrganizationID: org.ID,
		Used:           used,
		Total:          counter.Total,
		Remaining:      remaining,
		NextResetAt:    lifecycle.NextRenewalAnniversary(org.ContractStartDate, now),
	}
}

// Consume uses one free slot for the caller's organization. The feature is
// EXPERT-only; operating-company staff may consume on behalf of any
// organization. A reset due since the last anniversary is persisted first.
func (s *FreeSlotService) Consume(ctx context.Context, caller entitlement.Context, organizationID string, now time.Time) (*dto.FreeSlotView, error) {
	org, counter, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	orgCtx := caller
	if !caller.IsOperatingCompanyStaff {
		orgCtx.PlanTier = org.PlanTier
	}
	if !entitlement.CanAccess(entitlement.FeatureQualificationFreeSlot, orgCtx) {
		return nil, domainErrors.NewAccessDeniedError(
			entitlement.FeatureQualificationFreeSlot.String(), organizationID, string(org.PlanTier))
	}

	var resetAt *time.Time
	if lifecycle.NeedsFreeSlotReset(*counter, org.ContractStartDate, now) {
		anniversary := lifecycle.LastRenewalAnniversary(org.ContractStartDate, now)
		resetAt = &anniversary
		s.logger.Info("Resetting free slots at renewal anniversary",
			zap.String("organization_id", organizationID),
			zap.Int("previous_used", counter.Used),
			zap.Time("anniversary", anniversary))
	}

	updated, err := s.freeSlotRepo.Consume(ctx, organizationID, resetAt)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNoFreeSlotAvailable) {
			s.logger.Info("Free slots exhausted",
				zap.String("organization_id", organizationID),
				zap.Error(err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to consume free slot: %w", err)
	}
	metrics.FreeSlotsConsumedTotal.Inc()

	s.logger.Info("Free slot consumed",
		zap.String("organization_id", organizationID),
		zap.Int("used", updated.Used),
		zap.Int("total", updated.Total))

	return view(org, updated, now), nil
}
