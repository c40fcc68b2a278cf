package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"github.com/wekeepgrowing/premier-subscription/pkg/messaging"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository
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
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockOrganizationRepository) ChangePlan(ctx context.Context, change repository.PlanChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
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
	args := m.Called(ctx, organizationID, cancelAt)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Cancel(ctx context.Context, organizationID string) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Renew(ctx context.Context, renewal repository.Renewal) error {
	args := m.Called(ctx, renewal)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpsertInvoices(ctx context.Context, subscriptionID string, invoices []entity.Invoice) error {
	args := m.Called(ctx, subscriptionID, invoices)
	return args.Error(0)
}

// MockMemberRepository is a mock implementation of MemberRepository
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

// MockFreeSlotRepository is a mock implementation of FreeSlotRepository
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

// MockInvoiceProvider is a mock implementation of InvoiceProvider
type MockInvoiceProvider struct {
	mock.Mock
}

func (m *MockInvoiceProvider) ListInvoices(ctx context.Context, customerID string) ([]entity.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Invoice), args.Error(1)
}

func (m *MockInvoiceProvider) GetProviderName() string {
	return "stripe"
}

// MockPublisher is a mock implementation of messaging.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, event messaging.Event) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
