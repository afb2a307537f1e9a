package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithEnviron(environ()))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	cfg, err := Load(WithEnviron(environ(
		"SENSENAV_LOG_LEVEL=DEBUG",
		"SENSENAV_SERVER_ADDR=127.0.0.1:9000",
		"SENSENAV_SERVER_READ_TIMEOUT=2s",
		"SENSENAV_CATALOG_PATH=/etc/sensenav/icons.yaml",
		"SENSENAV_LISTS_PATH=lists.json",
		"OTHER_SERVER_ADDR=ignored",
	)))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/etc/sensenav/icons.yaml", cfg.Catalog.Path)
	assert.Equal(t, "lists.json", cfg.Lists.Path)
}

func TestLoadOverridesWinOverEnvironment(t *testing.T) {
	cfg, err := Load(
		WithEnviron(environ("SENSENAV_SERVER_ADDR=:7000", "SENSENAV_LISTS_PATH=env.json")),
		WithOverrides(map[string]any{"server.addr": ":9999", "lists.path": ""}),
	)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "env.json", cfg.Lists.Path, "empty overrides must not clobber other sources")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(WithEnviron(environ("SENSENAV_LOG_LEVEL=loud")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")

	_, err = Load(WithEnviron(environ("SENSENAV_SERVER_READ_TIMEOUT=soon")))
	require.Error(t, err)
}

func TestTransformEnvKey(t *testing.T) {
	key, value := transformEnvKey("SENSENAV_SERVER_SHUTDOWN_TIMEOUT", "1s")
	assert.Equal(t, "server.shutdown_timeout", key)
	assert.Equal(t, "1s", value)

	key, _ = transformEnvKey("SENSENAV_", "x")
	assert.Empty(t, key)
}
