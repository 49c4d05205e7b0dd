package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/ebn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "TICK_INTERVAL", "TICK_HISTORY", "NETWORK_NAME"} {
		t.Setenv(key, "")
	}

	assert.Equal(t, ":8080", ServerAddr())
	assert.Equal(t, 100.0, RateLimitRPS())
	assert.Equal(t, 20, RateLimitBurst())
	assert.Equal(t, "info", LogLevel())
	assert.Equal(t, time.Duration(0), TickInterval())
	assert.Equal(t, 1000, TickHistory())
	assert.Equal(t, "soccer", NetworkName())
}

func TestOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("TICK_HISTORY", "10")
	t.Setenv("RATE_LIMIT_BURST", "-1")

	assert.Equal(t, ":9090", ServerAddr())
	assert.Equal(t, 250*time.Millisecond, TickInterval())
	assert.Equal(t, 10, TickHistory())
	assert.Equal(t, 20, RateLimitBurst(), "invalid burst falls back")
}

func TestNetworkParams(t *testing.T) {
	t.Setenv("EBN_BETA", "0.3")
	t.Setenv("EBN_THETA", "0.6")
	t.Setenv("EBN_EXECUTION_TRIES", "3")
	t.Setenv("EBN_GOAL_TRACKING", "false")
	t.Setenv("EBN_CONCURRENT_ACTIONS", "true")
	t.Setenv("EBN_GAMMA", "not-a-number")

	p := NetworkParams()
	assert.Equal(t, 0.3, p.Beta)
	assert.Equal(t, 0.6, p.Theta)
	assert.Equal(t, 3, p.ExecutionTries)
	assert.False(t, p.GoalTracking)
	assert.True(t, p.ConcurrentActions)
	assert.True(t, p.InboxProcessing)
	assert.Equal(t, ebn.DefaultGamma, p.Gamma)
	assert.NoError(t, p.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("NETWORK_NAME=keeper\n"), 0o600))
	require.NoError(t, os.WriteFile(envFile+".secret", []byte("DATABASE_URL=postgres://localhost/behavenet\n"), 0o600))

	t.Setenv("BEHAVENET_ENV", envFile)
	t.Setenv("NETWORK_NAME", "")
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("NETWORK_NAME")
	os.Unsetenv("DATABASE_URL")

	require.NoError(t, Load())
	assert.Equal(t, "keeper", NetworkName())
	assert.Equal(t, "postgres://localhost/behavenet", DatabaseURL())
}
