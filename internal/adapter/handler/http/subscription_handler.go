package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/dto"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"go.uber.org/zap"
)

// SubscriptionHandler exposes the lifecycle of the caller's subscription
type SubscriptionHandler struct {
	logger        *zap.Logger
	entitlements  *usecase.EntitlementService
	subscriptions *usecase.SubscriptionService
	now           func() time.Time
}

func NewSubscriptionHandler(
	logger *zap.Logger,
	entitlements *usecase.EntitlementService,
	subscriptions *usecase.SubscriptionService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:        logger,
		entitlements:  entitlements,
		subscriptions: subscriptions,
		now:           time.Now,
	}
}

func (h *SubscriptionHandler) target(c echo.Context) (*usecase.Caller, string, error) {
	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return nil, "", err
	}
	orgID, err := targetOrganization(c, caller)
	if err != nil {
		return nil, "", err
	}
	return caller, orgID, nil
}

func (h *SubscriptionHandler) status(c echo.Context, orgID string) error {
	view, err := h.subscriptions.Status(c.Request().Context(), orgID, h.now())
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetCurrentSubscription returns the lifecycle view used by the dashboard
func (h *SubscriptionHandler) GetCurrentSubscription(c echo.Context) error {
	_, orgID, err := h.target(c)
	if err != nil {
		return err
	}
	return h.status(c, orgID)
}

// ScheduleCancel sets the date the subscription ends
func (h *SubscriptionHandler) ScheduleCancel(c echo.Context) error {
	caller, orgID, err := h.target(c)
	if err != nil {
		return err
	}
	if err := requireAdmin(caller); err != nil {
		return err
	}

	var req dto.ScheduleCancelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.subscriptions.ScheduleCancel(c.Request().Context(), orgID, req.CancelAt); err != nil {
		return toAppError(err)
	}
	return h.status(c, orgID)
}

// CancelSubscription cancels immediately. The records stay.
func (h *SubscriptionHandler) CancelSubscription(c echo.Context) error {
	caller, orgID, err := h.target(c)
	if err != nil {
		return err
	}
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := h.subscriptions.Cancel(c.Request().Context(), orgID); err != nil {
		return toAppError(err)
	}

	h.logger.Info("Subscription cancelled via API",
		zap.String("organization_id", orgID),
		zap.String("by_member_id", caller.Member.ID))

	return h.status(c, orgID)
}

// Renew starts the next annual period. Operating-company staff only.
func (h *SubscriptionHandler) Renew(c echo.Context) error {
	caller, orgID, err := h.target(c)
	if err != nil {
		return err
	}
	if err := requireStaff(caller); err != nil {
		return err
	}

	sub, err := h.subscriptions.Renew(c.Request().Context(), orgID, h.now())
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, sub)
}

// ChangePlan moves the organization to another tier
func (h *SubscriptionHandler) ChangePlan(c echo.Context) error {
	caller, orgID, err := h.target(c)
	if err != nil {
		return err
	}
	if err := requireAdmin(caller); err != nil {
		return err
	}

	var req dto.ChangePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	org, err := h.subscriptions.ChangePlan(c.Request().Context(), orgID, req.PlanTier)
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, org)
}

// ListInvoices pages the organization's invoices, newest first. ?refresh=true
// syncs them from the billing provider first.
func (h *SubscriptionHandler) ListInvoices(c echo.Context) error {
	_, orgID, err := h.target(c)
	if err != nil {
		return err
	}

	var (
		params  entity.PaginationParams
		refresh bool
	)
	if err := echo.QueryParamsBinder(c).
		Int("page", &params.Page).
		Int("limit", &params.Limit).
		Bool("refresh", &refresh).
		BindError(); err != nil {
		return invalidArgument("invalid query parameters", err)
	}

	res, err := h.subscriptions.ListInvoices(c.Request().Context(), orgID, params, refresh)
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, res)
}
