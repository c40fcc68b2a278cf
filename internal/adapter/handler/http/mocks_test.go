package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
)

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Onboard(ctx context.Context, records repository.OnboardingRecords) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockOrganizationRepository) ChangePlan(ctx context.Context, change repository.PlanChange) error {
	return m.Called(ctx, change).Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*entity.Subscription, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByStatus(ctx context.Context, status entity.SubscriptionStatus) ([]*entity.Subscription, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ScheduleCancel(ctx context.Context, organizationID string, cancelAt time.Time) error {
	return m.Called(ctx, organizationID, cancelAt).Error(0)
}

func (m *MockSubscriptionRepository) Cancel(ctx context.Context, organizationID string) error {
	return m.Called(ctx, organizationID).Error(0)
}

func (m *MockSubscriptionRepository) Renew(ctx context.Context, renewal repository.Renewal) error {
	return m.Called(ctx, renewal).Error(0)
}

func (m *MockSubscriptionRepository) UpsertInvoices(ctx context.Context, subscriptionID string, invoices []entity.Invoice) error {
	return m.Called(ctx, subscriptionID, invoices).Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

type MockFreeSlotRepository struct {
	mock.Mock
}

func (m *MockFreeSlotRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*entity.FreeSlotCounter, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FreeSlotCounter), args.Error(1)
}

func (m *MockFreeSlotRepository) Consume(ctx context.Context, organizationID string, resetAt *time.Time) (*entity.FreeSlotCounter, error) {
	args := m.Called(ctx, organizationID, resetAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FreeSlotCounter), args.Error(1)
}
