package stripe

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/provider"
	"go.uber.org/zap"
)

const defaultInvoiceLimit = 24

// StripeProvider implements provider.InvoiceProvider against the Stripe API
type StripeProvider struct {
	api    *client.API
	limit  int64
	logger *zap.Logger
}

// NewStripeProvider creates a Stripe invoice provider. backends may be nil to
// use the live Stripe endpoints.
func NewStripeProvider(secretKey string, limit int64, backends *stripe.Backends, logger *zap.Logger) *StripeProvider {
	if limit <= 0 {
		limit = defaultInvoiceLimit
	}
	return &StripeProvider{
		api:    client.New(secretKey, backends),
		limit:  limit,
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

// ListInvoices fetches up to the configured number of invoices for customerID.
// Drafts and voided invoices are skipped; amounts are whole yen.
func (s *StripeProvider) ListInvoices(ctx context.Context, customerID string) ([]entity.Invoice, error) {
	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(s.limit)
	params.Single = true

	var invoices []entity.Invoice
	iter := s.api.Invoices.List(params)
	for iter.Next() {
		inv := iter.Invoice()
		mapped, ok := toInvoice(inv)
		if !ok {
			s.logger.Debug("Skipping stripe invoice",
				zap.String("invoice_id", inv.ID),
				zap.String("status", string(inv.Status)))
			continue
		}
		invoices = append(invoices, mapped)
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("Failed to list stripe invoices",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, &provider.ProviderError{
			Provider: s.GetProviderName(),
			Code:     "LIST_INVOICES_FAILED",
			Message:  "failed to list invoices",
			Err:      err,
		}
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	return invoices, nil
}

func toInvoice(inv *stripe.Invoice) (entity.Invoice, bool) {
	var status entity.InvoiceStatus
	switch inv.Status {
	case stripe.InvoiceStatusPaid:
		status = entity.InvoiceStatusPaid
	case stripe.InvoiceStatusOpen, stripe.InvoiceStatusUncollectible:
		status = entity.InvoiceStatusOpen
	default:
		return entity.Invoice{}, false
	}

	number := inv.Number
	if number == "" {
		number = inv.ID
	}

	out := entity.Invoice{
		Number:    number,
		Amount:    decimal.NewFromInt(inv.Total),
		Status:    status,
		CreatedAt: unix(inv.Created),
		DueDate:   unix(inv.DueDate),
	}
	if inv.StatusTransitions != nil && inv.StatusTransitions.PaidAt > 0 {
		paidAt := unix(inv.StatusTransitions.PaidAt)
		out.PaidAt = &paidAt
	}
	if out.DueDate.IsZero() {
		out.DueDate = out.CreatedAt
	}
	return out, true
}

func unix(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
