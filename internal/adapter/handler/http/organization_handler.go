package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"go.uber.org/zap"
)

// OrganizationHandler registers client organizations
type OrganizationHandler struct {
	logger        *zap.Logger
	entitlements  *usecase.EntitlementService
	subscriptions *usecase.SubscriptionService
}

func NewOrganizationHandler(
	logger *zap.Logger,
	entitlements *usecase.EntitlementService,
	subscriptions *usecase.SubscriptionService,
) *OrganizationHandler {
	return &OrganizationHandler{
		logger:        logger,
		entitlements:  entitlements,
		subscriptions: subscriptions,
	}
}

// Onboard creates an organization with its subscription, free-slot counter
// and first administrator. Operating-company administrators only.
func (h *OrganizationHandler) Onboard(c echo.Context) error {
	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return err
	}
	if err := requireStaff(caller); err != nil {
		return err
	}
	if err := requireAdmin(caller); err != nil {
		return err
	}

	var req dto.OnboardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.subscriptions.Onboard(c.Request().Context(), req)
	if err != nil {
		return toAppError(err)
	}

	h.logger.Info("Organization onboarded via API",
		zap.String("organization_id", res.Organization.ID),
		zap.String("plan_tier", string(res.Organization.PlanTier)),
		zap.String("by_member_id", caller.Member.ID))

	return c.JSON(http.StatusCreated, res)
}
