package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"go.uber.org/zap"
)

// FreeSlotHandler serves the qualification free-slot allotment
type FreeSlotHandler struct {
	logger       *zap.Logger
	entitlements *usecase.EntitlementService
	freeSlots    *usecase.FreeSlotService
	now          func() time.Time
}

func NewFreeSlotHandler(logger *zap.Logger, entitlements *usecase.EntitlementService, freeSlots *usecase.FreeSlotService) *FreeSlotHandler {
	return &FreeSlotHandler{
		logger:       logger,
		entitlements: entitlements,
		freeSlots:    freeSlots,
		now:          time.Now,
	}
}

// GetFreeSlots returns the effective allotment
func (h *FreeSlotHandler) GetFreeSlots(c echo.Context) error {
	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return err
	}
	orgID, err := targetOrganization(c, caller)
	if err != nil {
		return err
	}

	view, err := h.freeSlots.Availability(c.Request().Context(), orgID, h.now())
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// ConsumeFreeSlot uses one slot
func (h *FreeSlotHandler) ConsumeFreeSlot(c echo.Context) error {
	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return err
	}
	orgID, err := targetOrganization(c, caller)
	if err != nil {
		return err
	}

	view, err := h.freeSlots.Consume(c.Request().Context(), caller.Entitlement, orgID, h.now())
	if err != nil {
		return toAppError(err)
	}

	h.logger.Info("Free slot consumed via API",
		zap.String("organization_id", orgID),
		zap.String("by_member_id", caller.Member.ID),
		zap.Int("remaining", view.Remaining))

	return c.JSON(http.StatusOK, view)
}
