package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/internal/server"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/library"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    LibraryFunc: func() (*library.Store, error) {
//	        return library.New(filepath.Join(t.TempDir(), "strains.yaml"))
//	    },
//	}
//	cmd := strains.NewListCommand(mock)
type Mock struct {
	LibraryFunc      func() (*library.Store, error)
	ImporterFunc     func(ctx context.Context, opts ...importer.Option) (*importer.Importer, error)
	ServerConfigFunc func() server.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Library returns a store using the mock function or nil.
func (m *Mock) Library() (*library.Store, error) {
	if m.LibraryFunc != nil {
		return m.LibraryFunc()
	}
	return nil, nil
}

// Importer returns an importer using the mock function, or a local-only
// importer with the given options.
func (m *Mock) Importer(ctx context.Context, opts ...importer.Option) (*importer.Importer, error) {
	if m.ImporterFunc != nil {
		return m.ImporterFunc(ctx, opts...)
	}
	return importer.New(append([]importer.Option{importer.WithLogger(m.Logger())}, opts...)...)
}

// ServerConfig returns the mock config or server defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// NoColor always disables color.
func (m *Mock) NoColor() bool {
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string {
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
