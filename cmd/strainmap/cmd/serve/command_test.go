package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/internal/server"
)

func TestParseConfigKeepsBase(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	base := server.DefaultConfig()
	base.Addr = "0.0.0.0:9000"
	base.RateLimit = 5

	assert.Equal(t, base, parseConfig(cmd, base))
}

func TestParseConfigFlagsOverride(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--addr", ":8080",
		"--cors-origins", "https://a.example,https://b.example",
		"--rate-limit", "0",
		"--cache-ttl", "5m",
		"--prefix", "/v1",
	}))

	base := server.DefaultConfig()
	base.CORSEnabled = false

	cfg := parseConfig(cmd, base)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/v1", cfg.PathPrefix)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, base.ReadTimeout, cfg.ReadTimeout)
}
