// Package app provides the application context and dependency management
// for the strainmap CLI. It centralizes configuration, logging, the strain
// library and the Gemini client, and hands them to commands through the
// application.Application interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/internal/cmd/output"
	"github.com/agentstation/strainmap/internal/gemini"
	"github.com/agentstation/strainmap/internal/server"
	"github.com/agentstation/strainmap/internal/transport"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/library"
)

// App represents the strainmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily created, shared by all commands of one run
	mu      sync.Mutex
	library *library.Store
	gemini  *gemini.Client
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations; use WithConfig to
// replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, err
		}
		app.config = config
	}
	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the explicit --format, or table on a terminal and
// JSON otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// ServerConfig returns the HTTP server settings.
func (a *App) ServerConfig() server.Config {
	return a.config.ServerConfig()
}

// Library returns the strain library, creating it on first use.
func (a *App) Library() (*library.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.library != nil {
		return a.library, nil
	}
	store, err := library.New(a.config.LibraryPath, library.WithLogger(a.logger))
	if err != nil {
		return nil, errors.NewConfigError("library", "cannot open "+a.config.LibraryPath, err)
	}
	a.library = store
	return store, nil
}

// Importer returns an importer wired to Gemini when the LLM is enabled and
// an API key is configured. Without a key the importer runs local-only and
// research reports the LLM as unavailable.
func (a *App) Importer(ctx context.Context, opts ...importer.Option) (*importer.Importer, error) {
	base := []importer.Option{
		importer.WithLogger(a.logger),
		importer.WithLLM(a.config.UseLLM),
	}

	if a.config.UseLLM {
		client, err := a.geminiClient(ctx)
		switch {
		case err == nil:
			base = append(base, importer.WithExtractor(client), importer.WithResearcher(client))
		case errors.IsAPIKeyError(err):
			a.logger.Debug().Msg("No Gemini API key configured, using local parser only")
		default:
			return nil, err
		}
	}

	return importer.New(append(base, opts...)...)
}

func (a *App) geminiClient(ctx context.Context) (*gemini.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.gemini != nil {
		return a.gemini, nil
	}
	client, err := gemini.New(ctx, gemini.Config{
		APIKey:     a.config.GeminiAPIKey,
		Model:      a.config.GeminiModel,
		Endpoint:   a.config.GeminiEndpoint,
		HTTPClient: transport.NewClient("strainmap/"+a.version, 0),
	})
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("model", client.Model()).Msg("Gemini client ready")
	a.gemini = client
	return client, nil
}

// Shutdown releases application resources. It is safe to call more than once.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gemini = nil
	a.library = nil
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		a.logger = logger
		return nil
	}
}

// WithGemini sets the Gemini client, e.g. one built over a test generator.
func WithGemini(client *gemini.Client) Option {
	return func(a *App) error {
		if client == nil {
			return &errors.ValidationError{Field: "gemini", Message: "cannot be nil"}
		}
		a.gemini = client
		return nil
	}
}
