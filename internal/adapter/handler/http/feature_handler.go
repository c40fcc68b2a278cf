package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"go.uber.org/zap"
)

// FeatureHandler answers dashboard access questions
type FeatureHandler struct {
	logger       *zap.Logger
	entitlements *usecase.EntitlementService
}

func NewFeatureHandler(logger *zap.Logger, entitlements *usecase.EntitlementService) *FeatureHandler {
	return &FeatureHandler{
		logger:       logger,
		entitlements: entitlements,
	}
}

// GetFeatures returns the caller's access to every feature
func (h *FeatureHandler) GetFeatures(c echo.Context) error {
	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usecase.Matrix(caller.Entitlement))
}

// GetFeatureAccess decides a single feature. Unknown names are answered with
// allowed=false and known=false rather than an error.
func (h *FeatureHandler) GetFeatureAccess(c echo.Context) error {
	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return err
	}

	decision := h.entitlements.Decide(caller.Entitlement, c.Param("feature"))
	if !decision.Allowed {
		h.logger.Debug("Feature access denied",
			zap.String("member_id", caller.Member.ID),
			zap.String("feature", decision.Feature),
			zap.String("plan_tier", string(decision.PlanTier)))
	}
	return c.JSON(http.StatusOK, decision)
}
