package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponentAnnotatesEntries(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "sensenav-test"})
	t.Cleanup(func() { Configure(Config{}) })

	logger := WithComponent("icons")
	logger.Warn().Str("field", "buttonIcons").Msg("option source failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "icons", entry["component"])
	assert.Equal(t, "sensenav-test", entry["service"])
	assert.Equal(t, "buttonIcons", entry["field"])
}

func TestConfigureFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "error", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	base := Base()
	base.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	base.Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigureIgnoresUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "chatty", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	base := Base()
	base.Debug().Msg("hidden")
	base.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
