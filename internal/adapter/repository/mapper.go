package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/model"
)

func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s id %q: %v", domainErrors.ErrInvalidID, kind, id, err)
	}
	return parsed, nil
}

// utc keeps stored instants free of the caller's zone
func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func organizationToEntity(m *model.Organization) *entity.Organization {
	if m == nil {
		return nil
	}
	return &entity.Organization{
		ID:                        m.ID.String(),
		Name:                      m.Name,
		PlanTier:                  entitlement.PlanTier(m.PlanTier),
		Status:                    entity.SubscriptionStatus(m.Status),
		ContractStartDate:         m.ContractStartDate,
		AutoRenewal:               m.AutoRenewal,
		DiscountPercent:           m.DiscountPercent,
		BasePrice:                 m.BasePrice,
		FinalPrice:                m.FinalPrice,
		IsExistingPrintSubscriber: m.IsExistingPrintSubscriber,
		IsOperatingCompany:        m.IsOperatingCompany,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

func organizationToModel(e *entity.Organization) (*model.Organization, error) {
	id, err := parseID("organization", e.ID)
	if err != nil {
		return nil, err
	}
	return &model.Organization{
		ID:                        id,
		Name:                      e.Name,
		PlanTier:                  string(e.PlanTier),
		Status:                    model.SubscriptionStatus(e.Status),
		ContractStartDate:         utc(e.ContractStartDate),
		AutoRenewal:               e.AutoRenewal,
		DiscountPercent:           e.DiscountPercent,
		BasePrice:                 e.BasePrice,
		FinalPrice:                e.FinalPrice,
		IsExistingPrintSubscriber: e.IsExistingPrintSubscriber,
		IsOperatingCompany:        e.IsOperatingCompany,
	}, nil
}

func subscriptionToEntity(m *model.Subscription) *entity.Subscription {
	if m == nil {
		return nil
	}
	sub := &entity.Subscription{
		ID:                 m.ID.String(),
		OrganizationID:     m.OrganizationID.String(),
		PlanTier:           entitlement.PlanTier(m.PlanTier),
		Status:             entity.SubscriptionStatus(m.Status),
		CurrentPeriodStart: m.CurrentPeriodStart,
		CurrentPeriodEnd:   m.CurrentPeriodEnd,
		CancelAt:           m.CancelAt,
		AutoRenewal:        m.AutoRenewal,
		PaymentMethod:      m.PaymentMethod,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.ProviderCustomerID != nil {
		sub.ProviderCustomerID = *m.ProviderCustomerID
	}
	for i := range m.Invoices {
		sub.Invoices = append(sub.Invoices, invoiceToEntity(&m.Invoices[i]))
	}
	return sub
}

func subscriptionToModel(e *entity.Subscription) (*model.Subscription, error) {
	id, err := parseID("subscription", e.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := parseID("organization", e.OrganizationID)
	if err != nil {
		return nil, err
	}
	m := &model.Subscription{
		ID:                 id,
		OrganizationID:     orgID,
		PlanTier:           string(e.PlanTier),
		Status:             model.SubscriptionStatus(e.Status),
		CurrentPeriodStart: utc(e.CurrentPeriodStart),
		CurrentPeriodEnd:   utc(e.CurrentPeriodEnd),
		CancelAt:           utcPtr(e.CancelAt),
		AutoRenewal:        e.AutoRenewal,
		PaymentMethod:      e.PaymentMethod,
	}
	if e.ProviderCustomerID != "" {
		customerID := e.ProviderCustomerID
		m.ProviderCustomerID = &customerID
	}
	return m, nil
}

func invoiceToEntity(m *model.Invoice) entity.Invoice {
	return entity.Invoice{
		Number:    m.Number,
		Amount:    m.Amount,
		Status:    entity.InvoiceStatus(m.Status),
		CreatedAt: m.CreatedAt,
		PaidAt:    m.PaidAt,
		DueDate:   m.DueDate,
	}
}

func invoiceToModel(subscriptionID uuid.UUID, e entity.Invoice) model.Invoice {
	return model.Invoice{
		SubscriptionID: subscriptionID,
		Number:         e.Number,
		Amount:         e.Amount,
		Status:         string(e.Status),
		CreatedAt:      utc(e.CreatedAt),
		PaidAt:         utcPtr(e.PaidAt),
		DueDate:        utc(e.DueDate),
	}
}

func memberToEntity(m *model.Member) *entity.Member {
	if m == nil {
		return nil
	}
	return &entity.Member{
		ID:             m.ID.String(),
		OrganizationID: m.OrganizationID.String(),
		Email:          m.Email,
		Name:           m.Name,
		Role:           entitlement.Role(m.Role),
		CreatedAt:      m.CreatedAt,
	}
}

func memberToModel(e *entity.Member) (*model.Member, error) {
	id, err := parseID("member", e.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := parseID("organization", e.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &model.Member{
		ID:             id,
		OrganizationID: orgID,
		Email:          e.Email,
		Name:           e.Name,
		Role:           string(e.Role),
	}, nil
}

func freeSlotToEntity(m *model.FreeSlotCounter) *entity.FreeSlotCounter {
	if m == nil {
		return nil
	}
	return &entity.FreeSlotCounter{
		OrganizationID: m.OrganizationID.String(),
		Used:           m.Used,
		Total:          m.Total,
		LastResetAt:    m.LastResetAt,
	}
}

func freeSlotToModel(e *entity.FreeSlotCounter) (*model.FreeSlotCounter, error) {
	orgID, err := parseID("organization", e.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &model.FreeSlotCounter{
		OrganizationID: orgID,
		Used:           e.Used,
		Total:          e.Total,
		LastResetAt:    utc(e.LastResetAt),
	}, nil
}
