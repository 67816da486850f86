package cfgloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/cfgloader"
)

type serverConfig struct {
	Host     string `yaml:"host"      validate:"required"`
	Port     int    `yaml:"port"      default:"8080"`
	LogLevel string `yaml:"log_level" default:"info"`
	APIKey   string `yaml:"api_key"   mask:"true"`
}

func writeConfig(t *testing.T, dir, env, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
}

func TestLoad_AppliesDefaultsAndEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", "host: localhost\napi_key: ${TEST_API_KEY}\n")

	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TEST_API_KEY", "secret-token")

	cfg, err := cfgloader.Load[serverConfig](cfgloader.WithDir(dir), cfgloader.WithSilent())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "secret-token", cfg.APIKey)
}

func TestLoad_YamlOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", "host: 0.0.0.0\nport: 9090\nlog_level: debug\n")

	t.Setenv("ENVIRONMENT", "test")

	cfg, err := cfgloader.Load[serverConfig](cfgloader.WithDir(dir), cfgloader.WithSilent())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", "port: 9090\n")

	t.Setenv("ENVIRONMENT", "test")

	_, err := cfgloader.Load[serverConfig](cfgloader.WithDir(dir), cfgloader.WithSilent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fields")
}

func TestLoad_MissingEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")

	_, err := cfgloader.Load[serverConfig](cfgloader.WithSilent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVIRONMENT")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	_, err := cfgloader.Load[serverConfig](cfgloader.WithDir(t.TempDir()), cfgloader.WithSilent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}
