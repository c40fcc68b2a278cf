package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, env, name, body string) {
	t.Helper()
	path := filepath.Join(dir, env)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, name+".yaml"), []byte(body), 0o644))
}

func TestLoad_FallsBackToExample(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "example", "subscription", "server:\n  http:\n    port: 8080\n")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("subscription", Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.GetInt("server.http.port"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev", "subscription", "jwt:\n  secret: from-file\n")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SUBSCRIPTION_JWT_SECRET", "from-env")

	cfg, err := Load("subscription", Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GetString("jwt.secret"))
}

func TestLoad_DefaultsAndUnmarshal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev", "subscription", "service:\n  name: premier\n")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("subscription", Options{
		Dir:      dir,
		Defaults: map[string]interface{}{"service.version": "0.0.0"},
	})
	require.NoError(t, err)

	var out struct {
		Service struct {
			Name    string `mapstructure:"name"`
			Version string `mapstructure:"version"`
		} `mapstructure:"service"`
	}
	require.NoError(t, cfg.Unmarshal(&out))
	assert.Equal(t, "premier", out.Service.Name)
	assert.Equal(t, "0.0.0", out.Service.Version)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CONFIG_PATH", "")

	_, err := Load("subscription", Options{Dir: t.TempDir()})
	assert.Error(t, err)
}
