package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/lifecycle"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/pricing"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/provider"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"go.uber.org/zap"
)

// invoiceDueDays is the payment term of invoices issued by this service
const invoiceDueDays = 30

// SubscriptionService runs the subscription lifecycle commands
type SubscriptionService struct {
	orgRepo          repository.OrganizationRepository
	subscriptionRepo repository.SubscriptionRepository
	freeSlotRepo     repository.FreeSlotRepository
	invoiceProvider  provider.InvoiceProvider
	logger           *zap.Logger
	freeSlotsPerYear int
	now              func() time.Time
}

// NewSubscriptionService creates a new subscription service. invoiceProvider
// may be nil, in which case invoices are served from the database only.
func NewSubscriptionService(
	orgRepo repository.OrganizationRepository,
	subscriptionRepo repository.SubscriptionRepository,
	freeSlotRepo repository.FreeSlotRepository,
	invoiceProvider provider.InvoiceProvider,
	logger *zap.Logger,
	freeSlotsPerYear int,
) *SubscriptionService {
	return &SubscriptionService{
		orgRepo:          orgRepo,
		subscriptionRepo: subscriptionRepo,
		freeSlotRepo:     freeSlotRepo,
		invoiceProvider:  invoiceProvider,
		logger:           logger,
		freeSlotsPerYear: freeSlotsPerYear,
		now:              time.Now,
	}
}

// WithClock replaces the clock used to stamp created records
func (s *SubscriptionService) WithClock(now func() time.Time) *SubscriptionService {
	s.now = now
	return s
}

// freeSlotTotal is the annual allotment that comes with tier
func (s *SubscriptionService) freeSlotTotal(tier entitlement.PlanTier) int {
	if tier == entitlement.PlanTierExpert {
		return s.freeSlotsPerYear
	}
	return 0
}

func newInvoice(amount decimal.Decimal, periodStart, issuedAt time.Time) entity.Invoice {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return entity.Invoice{
		Number:    fmt.Sprintf("PRM-%s-%s", periodStart.UTC().Format("20060102"), suffix),
		Amount:    amount,
		Status:    entity.InvoiceStatusOpen,
		CreatedAt: issuedAt.UTC(),
		DueDate:   issuedAt.UTC().AddDate(0, 0, invoiceDueDays),
	}
}

// Onboard creates an organization, its first subscription period, its
// free-slot counter and its administrator in one transaction
func (s *SubscriptionService) Onboard(ctx context.Context, req dto.OnboardRequest) (*dto.OnboardResponse, error) {
	tier, ok := entitlement.ParsePlanTier(req.PlanTier)
	if !ok {
		return nil, domainErrors.ErrInvalidPlanTier
	}
	quote, _ := pricing.NewQuote(tier, req.IsExistingPrintSubscriber)

	now := s.now().UTC()
	start := req.ContractStartDate.UTC()
	end := lifecycle.OneYearAfter(start)

	autoRenewal := true
	if req.AutoRenewal != nil {
		autoRenewal = *req.AutoRenewal
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "invoice"
	}

	orgID := uuid.NewString()
	org := &entity.Organization{
		ID:                        orgID,
		Name:                      req.Name,
		PlanTier:                  tier,
		Status:                    entity.SubscriptionStatusActive,
		ContractStartDate:         start,
		AutoRenewal:               autoRenewal,
		DiscountPercent:           pricing.ImpliedDiscountPercent(quote.BasePrice, req.IsExistingPrintSubscriber),
		BasePrice:                 quote.BasePrice,
		FinalPrice:                quote.FinalPrice,
		IsExistingPrintSubscriber: req.IsExistingPrintSubscriber,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	sub := &entity.Subscription{
		ID:                 uuid.NewString(),
		OrganizationID:     orgID,
		PlanTier:           tier,
		Status:             entity.SubscriptionStatusActive,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
		AutoRenewal:        autoRenewal,
		PaymentMethod:      paymentMethod,
		ProviderCustomerID: req.ProviderCustomerID,
		Invoices:           []entity.Invoice{newInvoice(quote.FinalPrice, start, now)},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	counter := &entity.FreeSlotCounter{
		OrganizationID: orgID,
		Used:           0,
		Total:          s.freeSlotTotal(tier),
		LastResetAt:    start,
	}
	admin := &entity.Member{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Email:          strings.ToLower(strings.TrimSpace(req.AdminEmail)),
		Name:           req.AdminName,
		Role:           entitlement.RoleAdmin,
		CreatedAt:      now,
	}

	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrInvalidSubscriptionState, err)
	}

	err := s.orgRepo.Onboard(ctx, repository.OnboardingRecords{
		Organization: org,
		Subscription: sub,
		FreeSlots:    counter,
		Admin:        admin,
	})
	if err != nil {
		s.logger.Error("Failed to onboard organization",
			zap.String("organization_name", req.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to onboard organization: %w", err)
	}

	s.logger.Info("Organization onboarded",
		zap.String("organization_id", orgID),
		zap.String("plan_tier", string(tier)),
		zap.String("final_price", quote.FinalPrice.String()),
		zap.Time("period_end", end))

	return &dto.OnboardResponse{
		Organization: org,
		Subscription: sub,
		FreeSlots:    counter,
		Admin:        admin,
	}, nil
}

func (s *SubscriptionService) loadSubscription(ctx context.Context, organizationID string) (*entity.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, domainErrors.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (s *SubscriptionService) loadOrganization(ctx context.Context, organizationID string) (*entity.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, domainErrors.ErrOrganizationNotFound
	}
	return org, nil
}

// logInvalidState records a data-integrity problem at error level
func (s *SubscriptionService) logInvalidState(err error, sub *entity.Subscription) {
	if errors.Is(err, lifecycle.ErrInvalidSubscriptionState) {
		s.logger.Error("Subscription record is inconsistent",
			zap.String("subscription_id", sub.ID),
			zap.String("organization_id", sub.OrganizationID),
			zap.Error(err))
	}
}

// Status evaluates the lifecycle of the organization's subscription at now
func (s *SubscriptionService) Status(ctx context.Context, organizationID string, now time.Time) (*dto.SubscriptionStatusView, error) {
	org, err := s.loadOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	sub, err := s.loadSubscription(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	counter, err := s.freeSlotRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get free slot counter: %w", err)
	}

	st, err := lifecycle.Evaluate(sub, counter, org.ContractStartDate, now)
	if err != nil {
		s.logInvalidState(err, sub)
		return nil, err
	}

	return &dto.SubscriptionStatusView{
		OrganizationID:     org.ID,
		OrganizationName:   org.Name,
		PlanTier:           sub.PlanTier,
		Status:             sub.Status,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		AutoRenewal:        sub.AutoRenewal,
		PaymentMethod:      sub.PaymentMethod,
		BasePrice:          org.BasePrice,
		FinalPrice:         org.FinalPrice,
		Lifecycle:          st,
	}, nil
}

// ScheduleCancel ends the subscription at cancelAt, which must fall inside
// the current period and not before now. Auto-renewal is turned off.
func (s *SubscriptionService) ScheduleCancel(ctx context.Context, organizationID string, cancelAt time.Time) error {
	sub, err := s.loadSubscription(ctx, organizationID)
	if err != nil {
		return err
	}
	if sub.Status == entity.SubscriptionStatusCancelled {
		return domainErrors.ErrSubscriptionCancelled
	}
	if cancelAt.Before(sub.CurrentPeriodStart) || cancelAt.After(sub.CurrentPeriodEnd) {
		return domainErrors.ErrCancelAtOutOfPeriod
	}
	if cancelAt.Before(s.now()) {
		return domainErrors.ErrCancelAtInPast
	}

	if err := s.subscriptionRepo.ScheduleCancel(ctx, organizationID, cancelAt); err != nil {
		return fmt.Errorf("failed to schedule cancellation: %w", err)
	}

	s.logger.Info("Subscription cancellation scheduled",
		zap.String("organization_id", organizationID),
		zap.Time("cancel_at", cancelAt))
	return nil
}

// Cancel moves the subscription to CANCELLED. Records are kept.
func (s *SubscriptionService) Cancel(ctx context.Context, organizationID string) error {
	sub, err := s.loadSubscription(ctx, organizationID)
	if err != nil {
		return err
	}
	if sub.Status == entity.SubscriptionStatusCancelled {
		return domainErrors.ErrSubscriptionCancelled
	}

	if err := s.subscriptionRepo.Cancel(ctx, organizationID); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	s.logger.Info("Subscription cancelled",
		zap.String("organization_id", organizationID),
		zap.String("subscription_id", sub.ID))
	return nil
}

// Renew starts the next one-year period at the end of the current one. Any
// scheduled cancellation is cleared and an open invoice is issued at the
// current price. The free-slot counter is left alone: renewing ahead of time
// must not wipe this year's usage, and the anniversary reset in
// FreeSlotService covers the new period.
func (s *SubscriptionService) Renew(ctx context.Context, organizationID string, now time.Time) (*entity.Subscription, error) {
	org, err := s.loadOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	sub, err := s.loadSubscription(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if sub.Status == entity.SubscriptionStatusCancelled {
		return nil, domainErrors.ErrSubscriptionCancelled
	}
	if _, err := lifecycle.DaysRemaining(sub, now); err != nil {
		s.logInvalidState(err, sub)
		return nil, err
	}

	base, ok := pricing.BasePrice(org.PlanTier)
	if !ok {
		return nil, domainErrors.ErrInvalidPlanTier
	}
	amount := pricing.ComputeFinalPrice(base, org.PlanTier, org.IsExistingPrintSubscriber)

	start := sub.CurrentPeriodEnd.UTC()
	renewal := repository.Renewal{
		OrganizationID: organizationID,
		PeriodStart:    start,
		PeriodEnd:      lifecycle.OneYearAfter(start),
		Invoice:        newInvoice(amount, start, now),
	}
	if err := s.subscriptionRepo.Renew(ctx, renewal); err != nil {
		return nil, fmt.Errorf("failed to renew subscription: %w", err)
	}

	s.logger.Info("Subscription renewed",
		zap.String("organization_id", organizationID),
		zap.Time("period_start", renewal.PeriodStart),
		zap.Time("period_end", renewal.PeriodEnd),
		zap.String("amount", amount.String()))

	return s.loadSubscription(ctx, organizationID)
}

// ChangePlan moves the organization to tierName, repricing it and resizing
// its free-slot allotment
func (s *SubscriptionService) ChangePlan(ctx context.Context, organizationID, tierName string) (*entity.Organization, error) {
	tier, ok := entitlement.ParsePlanTier(tierName)
	if !ok {
		return nil, domainErrors.ErrInvalidPlanTier
	}

	org, err := s.loadOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org.Status == entity.SubscriptionStatusCancelled {
		return nil, domainErrors.ErrOrganizationInactive
	}
	if org.PlanTier == tier {
		return nil, domainErrors.ErrPlanUnchanged
	}

	quote, _ := pricing.NewQuote(tier, org.IsExistingPrintSubscriber)
	change := repository.PlanChange{
		OrganizationID: organizationID,
		PlanTier:       tier,
		BasePrice:      quote.BasePrice,
		FinalPrice:     quote.FinalPrice,
		FreeSlotTotal:  s.freeSlotTotal(tier),
	}
	if err := s.orgRepo.ChangePlan(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to change plan: %w", err)
	}

	s.logger.Info("Organization plan changed",
		zap.String("organization_id", organizationID),
		zap.String("from", string(org.PlanTier)),
		zap.String("to", string(tier)))

	return s.loadOrganization(ctx, organizationID)
}

// ListInvoices pages the organization's invoices, newest first. With refresh
// set the billing provider's copy is merged in first; provider failures fall
// back to the stored invoices.
func (s *SubscriptionService) ListInvoices(ctx context.Context, organizationID string, params entity.PaginationParams, refresh bool) (*entity.PaginatedInvoicesResponse, error) {
	params.Validate()

	sub, err := s.loadSubscription(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if refresh && s.invoiceProvider != nil && sub.ProviderCustomerID != "" {
		if err := s.refreshInvoices(ctx, sub); err != nil {
			s.logger.Warn("Invoice refresh failed, serving stored invoices",
				zap.String("organization_id", organizationID),
				zap.String("provider", s.invoiceProvider.GetProviderName()),
				zap.Error(err))
		} else if sub, err = s.loadSubscription(ctx, organizationID); err != nil {
			return nil, err
		}
	}

	page := entity.PageInvoices(sub.Invoices, params)
	return &page, nil
}

func (s *SubscriptionService) refreshInvoices(ctx context.Context, sub *entity.Subscription) error {
	invoices, err := s.invoiceProvider.ListInvoices(ctx, sub.ProviderCustomerID)
	if err != nil {
		return err
	}
	return s.subscriptionRepo.UpsertInvoices(ctx, sub.ID, invoices)
}
