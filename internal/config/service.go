package config

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	// ClientURL is the dashboard origin allowed by CORS
	ClientURL string `mapstructure:"client_url"`
}
