package provider

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

// ProviderType represents the billing provider type
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
	ProviderTypeNone   ProviderType = "none"
)

// InvoiceProvider reads invoices kept by an external billing system
type InvoiceProvider interface {
	// ListInvoices returns the customer's invoices, newest first
	ListInvoices(ctx context.Context, customerID string) ([]entity.Invoice, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider error [%s]: %s: %v", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider error [%s]: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
