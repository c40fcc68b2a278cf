package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/pricing"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	"go.uber.org/zap"
)

// PlanHandler serves the plan catalog and price quotes
type PlanHandler struct {
	logger       *zap.Logger
	pricing      *usecase.PricingService
	entitlements *usecase.EntitlementService
}

func NewPlanHandler(logger *zap.Logger, pricingService *usecase.PricingService, entitlements *usecase.EntitlementService) *PlanHandler {
	return &PlanHandler{
		logger:       logger,
		pricing:      pricingService,
		entitlements: entitlements,
	}
}

// GetPlans lists both tiers with list and print-subscriber prices. Public.
func (h *PlanHandler) GetPlans(c echo.Context) error {
	plans := h.pricing.Plans()
	return c.JSON(http.StatusOK, echo.Map{
		"plans":    plans,
		"currency": pricing.Currency,
	})
}

// GetQuote prices ?tier= for ?print_subscriber=. Without a tier the caller's
// current plan is quoted.
func (h *PlanHandler) GetQuote(c echo.Context) error {
	var (
		tier            string
		printSubscriber bool
	)
	if err := echo.QueryParamsBinder(c).
		String("tier", &tier).
		Bool("print_subscriber", &printSubscriber).
		BindError(); err != nil {
		return invalidArgument("invalid query parameters", err)
	}

	if tier != "" {
		quote, err := h.pricing.Quote(tier, printSubscriber)
		if err != nil {
			return toAppError(err)
		}
		return c.JSON(http.StatusOK, quote)
	}

	caller, err := resolveCaller(c, h.entitlements)
	if err != nil {
		return err
	}
	orgID, err := targetOrganization(c, caller)
	if err != nil {
		return err
	}

	quote, err := h.pricing.QuoteForOrganization(c.Request().Context(), orgID)
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, quote)
}
