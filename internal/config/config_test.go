package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	t.Setenv("MECH_TICK_MS", "-5")
	t.Setenv("LOGGER_ENABLE", "")

	cfg, err := LoadConfiguration()
	require.NoError(t, err)
	require.Equal(t, 20, cfg.TickMs)
	require.True(t, cfg.Logging.Enable)
}

func TestLoadConfigurationFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MECH_TICK_MS", "50")
	t.Setenv("TELEMETRY_SINK", "kafka")
	t.Setenv("KAFKA_TOPIC", "robot")
	t.Setenv("LOGGER_ENABLE", "false")

	cfg, err := LoadConfiguration()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.ServerPort)
	require.Equal(t, 50, cfg.TickMs)
	require.Equal(t, "kafka", cfg.Telemetry.Sink)
	require.Equal(t, "robot", cfg.Telemetry.KafkaTopic)
	require.False(t, cfg.Logging.Enable)
}
