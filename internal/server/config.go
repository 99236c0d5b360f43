package server

import (
	"time"

	"github.com/agentstation/strainmap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (host:port)
	Addr string

	// PathPrefix is the prefix of the JSON API routes
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is the number of LLM requests (import with LLM, research)
	// per minute per client. 0 disables the limit.
	RateLimit int

	// CacheTTL is how long research results are reused
	CacheTTL time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         constants.DefaultServerAddr,
		PathPrefix:   constants.APIPrefix,
		CORSEnabled:  true,
		CORSOrigins:  []string{},
		RateLimit:    30,
		CacheTTL:     30 * time.Minute,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}
}
