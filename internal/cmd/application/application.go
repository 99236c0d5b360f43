// Package application defines what strainmap commands need from the app.
// The App type in cmd/strainmap/app implements Application; tests use Mock.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/internal/server"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/library"
)

// Application is the dependency surface shared by all commands.
type Application interface {
	// Library returns the strain library, creating it lazily.
	Library() (*library.Store, error)

	// Importer returns an importer wired to the configured LLM. Extra
	// options are applied after the configured ones.
	Importer(ctx context.Context, opts ...importer.Option) (*importer.Importer, error)

	// ServerConfig returns the HTTP server settings from configuration.
	ServerConfig() server.Config

	Logger() *zerolog.Logger

	// OutputFormat returns the resolved output format (table, wide, json, yaml).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
