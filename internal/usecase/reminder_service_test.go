package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"github.com/wekeepgrowing/premier-subscription/pkg/messaging"
)

const channel = "premier.subscription.events"

func subscriptionEnding(id string, end entity.Subscription) *entity.Subscription {
	end.ID = id
	end.OrganizationID = "org-" + id
	end.Status = entity.SubscriptionStatusActive
	return &end
}

func TestReminderService_Sweep(t *testing.T) {
	ctx := context.Background()
	now := date(2026, 3, 20)

	subs := []*entity.Subscription{
		subscriptionEnding("expiring", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2026, 4, 1)}),
		subscriptionEnding("boundary", entity.Subscription{CurrentPeriodStart: date(2025, 4, 19), CurrentPeriodEnd: date(2026, 4, 19)}),
		subscriptionEnding("later", entity.Subscription{CurrentPeriodStart: date(2025, 9, 1), CurrentPeriodEnd: date(2026, 9, 1)}),
		subscriptionEnding("expired", entity.Subscription{CurrentPeriodStart: date(2025, 3, 10), CurrentPeriodEnd: date(2026, 3, 10)}),
		subscriptionEnding("broken", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1)}),
	}

	repo := new(MockSubscriptionRepository)
	repo.On("ListByStatus", ctx, entity.SubscriptionStatusActive).Return(subs, nil)

	published := map[string]dto.ReminderEvent{}
	types := map[string]string{}
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, channel, mock.AnythingOfType("messaging.Event")).
		Run(func(args mock.Arguments) {
			event := args.Get(2).(messaging.Event)
			var payload dto.ReminderEvent
			require.NoError(t, json.Unmarshal(event.Payload, &payload))
			published[payload.SubscriptionID] = payload
			types[payload.SubscriptionID] = event.Type
		}).
		Return(nil)

	service := usecase.NewReminderService(repo, publisher, channel, zap.NewNop())
	result, err := service.Sweep(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, dto.SweepResult{Checked: 5, ExpiringSoon: 2, Expired: 1, Skipped: 1}, result)

	assert.Equal(t, usecase.EventSubscriptionExpiringSoon, types["expiring"])
	assert.Equal(t, 12, published["expiring"].DaysRemaining)
	assert.Equal(t, 30, published["boundary"].DaysRemaining)
	assert.Equal(t, usecase.EventSubscriptionExpired, types["expired"])
	assert.Equal(t, -10, published["expired"].DaysRemaining)
	assert.NotContains(t, published, "later")
	assert.NotContains(t, published, "broken")
}

func TestReminderService_Sweep_PublishFailureContinues(t *testing.T) {
	ctx := context.Background()
	subs := []*entity.Subscription{
		subscriptionEnding("a", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2026, 4, 1)}),
		subscriptionEnding("b", entity.Subscription{CurrentPeriodStart: date(2025, 4, 2), CurrentPeriodEnd: date(2026, 4, 2)}),
	}

	repo := new(MockSubscriptionRepository)
	repo.On("ListByStatus", ctx, entity.SubscriptionStatusActive).Return(subs, nil)

	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, channel, mock.Anything).Return(errors.New("redis down")).Once()
	publisher.On("Publish", ctx, channel, mock.Anything).Return(nil).Once()

	service := usecase.NewReminderService(repo, publisher, channel, zap.NewNop())
	result, err := service.Sweep(ctx, date(2026, 3, 20))

	assert.ErrorContains(t, err, "redis down")
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.ExpiringSoon)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestReminderService_Sweep_ListFailure(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	repo.On("ListByStatus", mock.Anything, entity.SubscriptionStatusActive).Return(nil, errors.New("timeout"))

	service := usecase.NewReminderService(repo, new(MockPublisher), channel, zap.NewNop())
	_, err := service.Sweep(context.Background(), date(2026, 3, 20))
	assert.ErrorContains(t, err, "failed to list active subscriptions")
}

func TestReminderService_Sweep_AppliesDueCancellation(t *testing.T) {
	ctx := context.Background()
	cancelAt := date(2026, 1, 31)
	notYet := date(2026, 3, 31)

	due := subscriptionEnding("due", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2026, 4, 1), CancelAt: &cancelAt})
	scheduled := subscriptionEnding("scheduled", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2026, 4, 1), CancelAt: &notYet})

	repo := new(MockSubscriptionRepository)
	repo.On("ListByStatus", ctx, entity.SubscriptionStatusActive).Return([]*entity.Subscription{due, scheduled}, nil)
	repo.On("Cancel", ctx, "org-due").Return(nil).Once()

	types := map[string]string{}
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, channel, mock.AnythingOfType("messaging.Event")).
		Run(func(args mock.Arguments) {
			event := args.Get(2).(messaging.Event)
			var payload dto.ReminderEvent
			require.NoError(t, json.Unmarshal(event.Payload, &payload))
			types[payload.SubscriptionID] = event.Type
		}).
		Return(nil)

	service := usecase.NewReminderService(repo, publisher, channel, zap.NewNop())
	result, err := service.Sweep(ctx, date(2026, 3, 20))
	require.NoError(t, err)

	assert.Equal(t, dto.SweepResult{Checked: 2, ExpiringSoon: 1, Cancelled: 1}, result)
	assert.Equal(t, usecase.EventSubscriptionCancelled, types["due"])
	assert.Equal(t, usecase.EventSubscriptionExpiringSoon, types["scheduled"])
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Cancel", ctx, "org-scheduled")
}

func TestReminderService_Sweep_CancellationAtExactInstant(t *testing.T) {
	ctx := context.Background()
	cancelAt := date(2026, 3, 20)
	sub := subscriptionEnding("edge", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2026, 4, 1), CancelAt: &cancelAt})

	repo := new(MockSubscriptionRepository)
	repo.On("ListByStatus", ctx, entity.SubscriptionStatusActive).Return([]*entity.Subscription{sub}, nil)
	repo.On("Cancel", ctx, "org-edge").Return(nil)
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, channel, mock.Anything).Return(nil)

	service := usecase.NewReminderService(repo, publisher, channel, zap.NewNop())
	result, err := service.Sweep(ctx, cancelAt)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Cancelled)
	assert.Zero(t, result.ExpiringSoon)
}

func TestReminderService_Sweep_CancelFailureContinues(t *testing.T) {
	ctx := context.Background()
	cancelAt := date(2026, 1, 31)
	due := subscriptionEnding("due", entity.Subscription{CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2026, 4, 1), CancelAt: &cancelAt})
	other := subscriptionEnding("other", entity.Subscription{CurrentPeriodStart: date(2025, 4, 2), CurrentPeriodEnd: date(2026, 4, 2)})

	repo := new(MockSubscriptionRepository)
	repo.On("ListByStatus", ctx, entity.SubscriptionStatusActive).Return([]*entity.Subscription{due, other}, nil)
	repo.On("Cancel", ctx, "org-due").Return(errors.New("deadlock detected"))
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, channel, mock.Anything).Return(nil)

	service := usecase.NewReminderService(repo, publisher, channel, zap.NewNop())
	result, err := service.Sweep(ctx, date(2026, 3, 20))

	assert.ErrorContains(t, err, "deadlock detected")
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.ExpiringSoon)
	assert.Zero(t, result.Cancelled)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}
