// Package serve provides the HTTP server command for the strainmap CLI.
package serve

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/internal/cmd/cmdutil"
	"github.com/agentstation/strainmap/internal/server"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "server",
		Short:   "Start the JSON API for the web client",
		Long: `Start the HTTP API used by the strainmap web client.

Features:
  - Library document, per-strain and facet endpoints
  - Import with local parser, Gemini extraction, merge and review
  - Strain research with Gemini web search, cached per name list
  - Rate limiting of the LLM endpoints (requests per minute per IP)
  - CORS support for browser clients
  - Request logging, request IDs and panic recovery
  - Graceful shutdown with connection draining`,
		Example: `  # Start on the default address
  strainmap serve

  # Listen on all interfaces and allow one origin
  strainmap serve --addr :8787 --cors-origins https://strains.example.com

  # Disable the LLM rate limit
  strainmap serve --rate-limit 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().String("addr", defaults.Addr, "Listen address (host:port)")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", defaults.CORSEnabled, "Enable CORS")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated, default all)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "LLM requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "How long research results are reused")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// parseConfig starts from the configured server settings and applies the
// flags the user set explicitly.
func parseConfig(cmd *cobra.Command, base server.Config) server.Config {
	cfg := base
	flags := cmd.Flags()

	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("cors") {
		cfg.CORSEnabled, _ = flags.GetBool("cors")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
		cfg.CORSEnabled = true
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit, _ = flags.GetInt("rate-limit")
	}
	durations := map[string]*time.Duration{
		"cache-ttl":     &cfg.CacheTTL,
		"read-timeout":  &cfg.ReadTimeout,
		"write-timeout": &cfg.WriteTimeout,
		"idle-timeout":  &cfg.IdleTimeout,
	}
	for name, target := range durations {
		if flags.Changed(name) {
			*target, _ = flags.GetDuration(name)
		}
	}
	return cfg
}

func runServer(cmd *cobra.Command, app application.Application) error {
	ctx := cmd.Context()
	logger := app.Logger()
	cfg := parseConfig(cmd, app.ServerConfig())

	logger.Debug().
		Str("addr", cfg.Addr).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Interface("overrides", cmdutil.ChangedFlags(cmd)).
		Msg("Parsed server configuration")

	store, err := app.Library()
	if err != nil {
		return err
	}
	imp, err := app.Importer(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(store, imp, cfg, logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
