package provider

import (
	"github.com/wekeepgrowing/premier-subscription/internal/config"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/provider"
	stripeProvider "github.com/wekeepgrowing/premier-subscription/internal/infrastructure/provider/stripe"
	"go.uber.org/zap"
)

// Factory creates billing providers from configuration
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// InvoiceProvider returns the configured invoice provider, or nil when no
// billing provider is configured and invoices are served from the database only.
func (f *Factory) InvoiceProvider() provider.InvoiceProvider {
	if f.config.Stripe.SecretKey == "" {
		f.logger.Info("Stripe secret key not configured, invoice refresh disabled",
			zap.String("provider", string(provider.ProviderTypeNone)))
		return nil
	}

	f.logger.Info("Initializing invoice provider", zap.String("provider", string(provider.ProviderTypeStripe)))
	return stripeProvider.NewStripeProvider(
		f.config.Stripe.SecretKey,
		f.config.Stripe.InvoiceLimit,
		nil,
		f.logger.Named("stripe"),
	)
}
