package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/lifecycle"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"github.com/wekeepgrowing/premier-subscription/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/premier-subscription/pkg/messaging"
	"go.uber.org/zap"
)

// Reminder event types
const (
	EventSubscriptionExpiringSoon = "subscription.expiring_soon"
	EventSubscriptionExpired      = "subscription.expired"
	EventSubscriptionCancelled    = "subscription.cancelled"
)

// ReminderService publishes renewal reminders for active subscriptions
type ReminderService struct {
	subscriptionRepo repository.SubscriptionRepository
	publisher        messaging.Publisher
	channel          string
	logger           *zap.Logger
}

// NewReminderService creates a new reminder service instance
func NewReminderService(
	subscriptionRepo repository.SubscriptionRepository,
	publisher messaging.Publisher,
	channel string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		channel:          channel,
		logger:           logger,
	}
}

// Sweep evaluates every ACTIVE subscription at now. A subscription whose
// scheduled cancellation date has arrived is cancelled and announced instead
// of reminded. Subscriptions inside the reminder window get an expiring-soon
// event, ended ones an expired event carrying the negative day count.
// Inconsistent records are skipped. Failures do not stop the sweep; they are
// returned together at the end.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) (dto.SweepResult, error) {
	var result dto.SweepResult

	subs, err := s.subscriptionRepo.ListByStatus(ctx, entity.SubscriptionStatusActive)
	if err != nil {
		return result, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	var publishErrs []error
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Checked++

		if sub.CancelAt != nil && !now.Before(*sub.CancelAt) {
			if err := s.closeCancelled(ctx, sub, now); err != nil {
				metrics.ReminderEventsTotal.WithLabelValues("failed").Inc()
				result.Failed++
				publishErrs = append(publishErrs, err)
				continue
			}
			metrics.ReminderEventsTotal.WithLabelValues(EventSubscriptionCancelled).Inc()
			result.Cancelled++
			continue
		}

		days, err := lifecycle.DaysRemaining(sub, now)
		if err != nil {
			s.logger.Error("Skipping inconsistent subscription",
				zap.String("subscription_id", sub.ID),
				zap.String("organization_id", sub.OrganizationID),
				zap.Error(err))
			metrics.ReminderEventsTotal.WithLabelValues("skipped").Inc()
			result.Skipped++
			continue
		}

		var eventType string
		switch {
		case days < 0:
			eventType = EventSubscriptionExpired
		case lifecycle.IsExpiringSoon(days):
			eventType = EventSubscriptionExpiringSoon
		default:
			continue
		}

		if err := s.publish(ctx, eventType, sub, days, now); err != nil {
			s.logger.Error("Failed to publish reminder",
				zap.String("event", eventType),
				zap.String("organization_id", sub.OrganizationID),
				zap.Error(err))
			metrics.ReminderEventsTotal.WithLabelValues("failed").Inc()
			result.Failed++
			publishErrs = append(publishErrs, err)
			continue
		}

		metrics.ReminderEventsTotal.WithLabelValues(eventType).Inc()
		if eventType == EventSubscriptionExpired {
			result.Expired++
		} else {
			result.ExpiringSoon++
		}
	}

	s.logger.Info("Reminder sweep finished",
		zap.Int("checked", result.Checked),
		zap.Int("expiring_soon", result.ExpiringSoon),
		zap.Int("expired", result.Expired),
		zap.Int("cancelled", result.Cancelled),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, errors.Join(publishErrs...)
}

// closeCancelled moves a subscription past its CancelAt to CANCELLED and
// announces it
func (s *ReminderService) closeCancelled(ctx context.Context, sub *entity.Subscription, now time.Time) error {
	if err := s.subscriptionRepo.Cancel(ctx, sub.OrganizationID); err != nil {
		s.logger.Error("Failed to close subscription after scheduled cancellation",
			zap.String("organization_id", sub.OrganizationID),
			zap.Time("cancel_at", *sub.CancelAt),
			zap.Error(err))
		return fmt.Errorf("failed to cancel subscription of %s: %w", sub.OrganizationID, err)
	}
	s.logger.Info("Scheduled cancellation applied",
		zap.String("organization_id", sub.OrganizationID),
		zap.Time("cancel_at", *sub.CancelAt))

	// the record is already closed, a broken period only loses the day count
	days, _ := lifecycle.DaysRemaining(sub, now)
	if err := s.publish(ctx, EventSubscriptionCancelled, sub, days, now); err != nil {
		s.logger.Error("Failed to publish cancellation",
			zap.String("organization_id", sub.OrganizationID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *ReminderService) publish(ctx context.Context, eventType string, sub *entity.Subscription, days int, now time.Time) error {
	event, err := messaging.NewEvent(eventType, now, dto.ReminderEvent{
		OrganizationID: sub.OrganizationID,
		SubscriptionID: sub.ID,
		PlanTier:       string(sub.PlanTier),
		DaysRemaining:  days,
		PeriodEnd:      sub.CurrentPeriodEnd.UTC(),
		AutoRenewal:    sub.AutoRenewal,
		CancelAt:       sub.CancelAt,
	})
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, s.channel, event)
}

// Run sweeps every interval until ctx is done
func (s *ReminderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Reminder loop started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder loop stopped")
			return
		case t := <-ticker.C:
			if _, err := s.Sweep(ctx, t); err != nil && ctx.Err() == nil {
				s.logger.Error("Reminder sweep failed", zap.Error(err))
			}
		}
	}
}
