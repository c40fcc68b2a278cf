package http

import "github.com/labstack/echo/v4"

// Handlers groups every HTTP handler of the service
type Handlers struct {
	Plans         *PlanHandler
	Features      *FeatureHandler
	Organizations *OrganizationHandler
	Subscriptions *SubscriptionHandler
	FreeSlots     *FreeSlotHandler
}

// Register mounts the API on v1. public must not require a token.
func (h *Handlers) Register(public, protected *echo.Group) {
	public.GET("/plans", h.Plans.GetPlans)

	protected.GET("/pricing/quote", h.Plans.GetQuote)

	protected.GET("/features", h.Features.GetFeatures)
	protected.GET("/features/:feature/access", h.Features.GetFeatureAccess)

	protected.POST("/organizations", h.Organizations.Onboard)

	subscriptions := protected.Group("/subscriptions/current")
	subscriptions.GET("", h.Subscriptions.GetCurrentSubscription)
	subscriptions.POST("/cancel-schedule", h.Subscriptions.ScheduleCancel)
	subscriptions.POST("/cancel", h.Subscriptions.CancelSubscription)
	subscriptions.POST("/renew", h.Subscriptions.Renew)
	subscriptions.PUT("/plan", h.Subscriptions.ChangePlan)
	subscriptions.GET("/invoices", h.Subscriptions.ListInvoices)

	protected.GET("/free-slots", h.FreeSlots.GetFreeSlots)
	protected.POST("/free-slots/consume", h.FreeSlots.ConsumeFreeSlot)
}
