package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[client]
name = "騎士"
start_x = 10
mounted = true

[hero]
motion_delay = "150ms"
trace_move = true

[network]
server_address = "127.0.0.1:7001"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "騎士", cfg.Client.Name)
	assert.Equal(t, int32(10), cfg.Client.StartX)
	assert.Equal(t, int32(32), cfg.Client.StartY, "default kept")
	assert.True(t, cfg.Client.Mounted)
	assert.Equal(t, 150*time.Millisecond, cfg.Hero.MotionDelay)
	assert.True(t, cfg.Hero.TraceMove)
	assert.Equal(t, int32(100), cfg.Hero.DefaultSpeed)
	assert.Equal(t, 200*time.Millisecond, cfg.Hero.TickRate)
	assert.Equal(t, "127.0.0.1:7001", cfg.Network.ServerAddress)
	assert.Equal(t, 256, cfg.Network.OutQueueSize)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	other := writeConfig(t, "[client]\nuid = 77\n")
	t.Setenv(EnvPath, other)

	cfg, err := Load("does/not/exist.toml")
	require.NoError(t, err)
	assert.Equal(t, uint32(77), cfg.Client.UID)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[client\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[logging]\nformat = \"xml\"\n"))
	assert.ErrorContains(t, err, "logging.format")

	_, err = Load(writeConfig(t, "[hero]\ntick_rate = \"0s\"\n"))
	assert.ErrorContains(t, err, "tick_rate")
}
