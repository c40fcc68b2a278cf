package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
)

func newFreeSlotService(org *entity.Organization, counter *entity.FreeSlotCounter) (*usecase.FreeSlotService, *MockFreeSlotRepository) {
	orgRepo := new(MockOrganizationRepository)
	freeSlotRepo := new(MockFreeSlotRepository)
	orgRepo.On("GetByID", mock.Anything, org.ID).Return(org, nil)
	freeSlotRepo.On("GetByOrganizationID", mock.Anything, org.ID).Return(counter, nil)
	return usecase.NewFreeSlotService(orgRepo, freeSlotRepo, zap.NewNop()), freeSlotRepo
}

func TestFreeSlotService_Availability(t *testing.T) {
	org := expertOrganization()
	counter := &entity.FreeSlotCounter{OrganizationID: orgID, Used: 3, Total: 3, LastResetAt: date(2025, 4, 1)}
	service, freeSlotRepo := newFreeSlotService(org, counter)

	t.Run("before the anniversary", func(t *testing.T) {
		v, err := service.Availability(context.Background(), orgID, date(2026, 3, 31))
		require.NoError(t, err)
		assert.Equal(t, 3, v.Used)
		assert.Equal(t, 0, v.Remaining)
		assert.Equal(t, date(2026, 4, 1), v.NextResetAt)
	})

	t.Run("after the anniversary reads as reset", func(t *testing.T) {
		v, err := service.Availability(context.Background(), orgID, date(2026, 4, 1))
		require.NoError(t, err)
		assert.Equal(t, 0, v.Used)
		assert.Equal(t, 3, v.Remaining)
	})

	freeSlotRepo.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
}

func TestFreeSlotService_Consume(t *testing.T) {
	ctx := context.Background()
	memberCtx := entitlement.Context{PlanTier: entitlement.PlanTierExpert, Role: entitlement.RoleMember}

	t.Run("consumes without reset inside the year", func(t *testing.T) {
		counter := &entity.FreeSlotCounter{OrganizationID: orgID, Used: 1, Total: 3, LastResetAt: date(2025, 4, 1)}
		service, repo := newFreeSlotService(expertOrganization(), counter)
		repo.On("Consume", ctx, orgID, (*time.Time)(nil)).
			Return(&entity.FreeSlotCounter{OrganizationID: orgID, Used: 2, Total: 3, LastResetAt: date(2025, 4, 1)}, nil)

		v, err := service.Consume(ctx, memberCtx, orgID, date(2025, 10, 1))
		require.NoError(t, err)
		assert.Equal(t, 2, v.Used)
		assert.Equal(t, 1, v.Remaining)
		repo.AssertExpectations(t)
	})

	t.Run("persists the reset after the anniversary", func(t *testing.T) {
		counter := &entity.FreeSlotCounter{OrganizationID: orgID, Used: 3, Total: 3, LastResetAt: date(2025, 4, 1)}
		service, repo := newFreeSlotService(expertOrganization(), counter)
		anniversary := date(2026, 4, 1)
		repo.On("Consume", ctx, orgID, &anniversary).
			Return(&entity.FreeSlotCounter{OrganizationID: orgID, Used: 1, Total: 3, LastResetAt: anniversary}, nil)

		v, err := service.Consume(ctx, memberCtx, orgID, date(2026, 4, 2))
		require.NoError(t, err)
		assert.Equal(t, 1, v.Used)
		assert.Equal(t, 2, v.Remaining)
		repo.AssertExpectations(t)
	})

	t.Run("exhausted", func(t *testing.T) {
		counter := &entity.FreeSlotCounter{OrganizationID: orgID, Used: 3, Total: 3, LastResetAt: date(2025, 4, 1)}
		service, repo := newFreeSlotService(expertOrganization(), counter)
		repo.On("Consume", ctx, orgID, (*time.Time)(nil)).Return(nil, domainErrors.NewFreeSlotExhaustedError(3, 3))

		_, err := service.Consume(ctx, memberCtx, orgID, date(2025, 10, 1))
		assert.ErrorIs(t, err, domainErrors.ErrNoFreeSlotAvailable)

		var exhausted *domainErrors.FreeSlotExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3, exhausted.Total)
	})

	t.Run("standard organization is denied", func(t *testing.T) {
		org := expertOrganization()
		org.PlanTier = entitlement.PlanTierStandard
		service, repo := newFreeSlotService(org, &entity.FreeSlotCounter{OrganizationID: orgID, LastResetAt: date(2025, 4, 1)})

		_, err := service.Consume(ctx, entitlement.Context{PlanTier: entitlement.PlanTierStandard, Role: entitlement.RoleAdmin}, orgID, date(2025, 10, 1))
		var denied *domainErrors.AccessDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "qualification_free_slot", denied.Feature)
		repo.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("staff may consume for any organization", func(t *testing.T) {
		org := expertOrganization()
		org.PlanTier = entitlement.PlanTierStandard
		counter := &entity.FreeSlotCounter{OrganizationID: orgID, Used: 0, Total: 1, LastResetAt: date(2025, 4, 1)}
		service, repo := newFreeSlotService(org, counter)
		repo.On("Consume", ctx, orgID, (*time.Time)(nil)).
			Return(&entity.FreeSlotCounter{OrganizationID: orgID, Used: 1, Total: 1, LastResetAt: date(2025, 4, 1)}, nil)

		staff := entitlement.Context{PlanTier: entitlement.PlanTierStandard, Role: entitlement.RoleMember, IsOperatingCompanyStaff: true}
		v, err := service.Consume(ctx, staff, orgID, date(2025, 10, 1))
		require.NoError(t, err)
		assert.Equal(t, 0, v.Remaining)
	})
}
