// Package config loads layered service configuration with viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config gives read access to loaded settings
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string
	IsSet(key string) bool
	// Unmarshal decodes the whole configuration into out using mapstructure tags
	Unmarshal(out interface{}) error
}

type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string { return c.v.GetString(key) }
func (c *viperConfig) GetInt(key string) int { return c.v.GetInt(key) }
func (c *viperConfig) GetBool(key string) bool { return c.v.GetBool(key) }
func (c *viperConfig) GetStringSlice(key string) []string { return c.v.GetStringSlice(key) }
func (c *viperConfig) IsSet(key string) bool { return c.v.IsSet(key) }
func (c *viperConfig) Unmarshal(out interface{}) error { return c.v.Unmarshal(out) }

const configDir = "configs"

// Options tune Load. Zero values fall back to the conventions below.
type Options struct {
	// Defaults are registered before the file is read so env overrides work for every key
	Defaults map[string]interface{}
	// Dir overrides the configs/ root
	Dir string
}

// Load reads configs/{APP_ENV}/{serviceName}.yaml, falling back to
// configs/example/{serviceName}.yaml. CONFIG_PATH replaces the directory.
// Environment variables prefixed with the upper-cased service name override
// file values, with "." in keys written as "_".
func Load(serviceName string, opts ...Options) (Config, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	root := opt.Dir
	if root == "" {
		root = configDir
	}

	v := viper.New()
	for key, value := range opt.Defaults {
		v.SetDefault(key, value)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(root, env)
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		v.AddConfigPath(filepath.Join(root, "example"))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config for %s: %w", serviceName, err)
		}
	}

	return &viperConfig{v: v}, nil
}
