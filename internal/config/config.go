package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/wekeepgrowing/premier-subscription/pkg/config"
	"github.com/wekeepgrowing/premier-subscription/pkg/logger"
	"github.com/wekeepgrowing/premier-subscription/pkg/messaging"
)

// ServiceName selects configs/{env}/subscription.yaml and the SUBSCRIPTION_ env prefix
const ServiceName = "subscription"

type Config struct {
	Service  ServiceConfig    `mapstructure:"service"`
	Database DatabaseConfig   `mapstructure:"database"`
	Server   ServerConfig     `mapstructure:"server"`
	Log      logger.Config    `mapstructure:"log"`
	JWT      JWTConfig        `mapstructure:"jwt"`
	Redis    messaging.Config `mapstructure:"redis"`
	Stripe   StripeConfig     `mapstructure:"stripe"`
	Reminder ReminderConfig   `mapstructure:"reminder"`
	Pricing  PricingConfig    `mapstructure:"pricing"`
}

type JWTConfig struct {
	Secret    string   `mapstructure:"secret"`
	SkipPaths []string `mapstructure:"skip_paths"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	// InvoiceLimit caps how many invoices one refresh pulls
	InvoiceLimit int64 `mapstructure:"invoice_limit"`
}

type ReminderConfig struct {
	// Interval runs the sweep inside the server when positive
	Interval time.Duration `mapstructure:"interval"`
	Channel  string        `mapstructure:"channel"`
}

type PricingConfig struct {
	FreeSlotsPerYear int    `mapstructure:"free_slots_per_year"`
	PlanCatalogPath  string `mapstructure:"plan_catalog_path"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                "premier-subscription",
		"service.environment":         "dev",
		"service.client_url":          "http://localhost:3000",
		"server.http.port":            8080,
		"server.grpc.port":            9090,
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"database.slow_query":         "200ms",
		"log.level":                   "info",
		"log.format":                  "json",
		"log.output":                  "stdout",
		"jwt.secret":                  "",
		"jwt.skip_paths":              []string{"/health", "/metrics", "/api/v1/plans"},
		"redis.addr":                  "localhost:6379",
		"redis.password":              "",
		"redis.db":                    0,
		"stripe.secret_key":           "",
		"stripe.invoice_limit":        24,
		"reminder.interval":           "0s",
		"reminder.channel":            "premier.subscription.events",
		"pricing.free_slots_per_year": 3,
		"pricing.plan_catalog_path":   "configs/plans.yaml",
	}
}

// Load reads the layered configuration and validates the required values
func Load() (*Config, error) {
	raw, err := pkgconfig.Load(ServiceName, pkgconfig.Options{Defaults: defaults()})
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := raw.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("database.host and database.name are required")
	}
	if c.Pricing.FreeSlotsPerYear < 0 {
		return fmt.Errorf("pricing.free_slots_per_year must not be negative")
	}
	return nil
}
