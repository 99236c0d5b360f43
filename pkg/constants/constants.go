// Package constants provides shared constants used throughout the strainmap codebase.
// This includes timeouts, file permissions, extraction heuristics and default
// values that should be consistent across the parser, the LLM client, the
// library store and the HTTP server.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// LLMRequestTimeout bounds a single extraction or research call
	LLMRequestTimeout = 60 * time.Second

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout. Research calls
	// go through a search tool and can take longer than a plain extraction.
	ServerWriteTimeout = 2 * time.Minute

	// ServerIdleTimeout is the HTTP keep-alive idle timeout
	ServerIdleTimeout = 60 * time.Second

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Extraction heuristics
const (
	// MaxUnlabeledNameLength is the longest unlabeled line accepted as a strain name
	MaxUnlabeledNameLength = 60

	// MinTerpeneNameLength is the minimum rune count of a terpene name
	MinTerpeneNameLength = 2

	// MaxSlugLength caps generated library ids
	MaxSlugLength = 36

	// MaxRequestBodyBytes caps JSON request bodies accepted by the server (2 MB)
	MaxRequestBodyBytes = 2 << 20
)

// LLM defaults
const (
	// DefaultGeminiModel is the model used when none is configured
	DefaultGeminiModel = "gemini-3-flash-preview"

	// DefaultLLMTemperature keeps extraction close to the source text
	DefaultLLMTemperature = 0.2

	// GeminiProvider is the provider name used in errors and logs
	GeminiProvider = "gemini"
)

// Path and server defaults
const (
	// DefaultLibraryDir is the default directory for the strain library
	DefaultLibraryDir = "~/.strainmap"

	// DefaultLibraryFile is the library document file name
	DefaultLibraryFile = "strains.yaml"

	// DefaultConfigFile is the default config file name in the home directory
	DefaultConfigFile = ".strainmap"

	// DefaultServerAddr is the default listen address for the HTTP server
	DefaultServerAddr = "127.0.0.1:8787"

	// APIPrefix is the route prefix for the JSON API
	APIPrefix = "/api"
)

// Format constants
const (
	// TimeFormatISO8601 is the timestamp format of createdAt and updatedAt
	TimeFormatISO8601 = time.RFC3339
)
