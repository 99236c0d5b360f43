package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -q/--quiet (warn), winning over -v when both are set
//  3. -v/--verbose (debug)
//  4. LOG_LEVEL environment variable or log_level config key
//  5. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		level, ok := validateLogLevel(config.LogLevel)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	}

	switch {
	case config.Verbose && config.Quiet:
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	case config.Quiet:
		return "warn"
	case config.Verbose:
		return "debug"
	}

	if config.ConfiguredLogLevel != "" {
		if level, ok := validateLogLevel(config.ConfiguredLogLevel); ok {
			return level
		}
	}
	return "info"
}

// validateLogLevel returns the normalized level and whether it was valid.
// Invalid input maps to "info".
func validateLogLevel(level string) (string, bool) {
	l, err := logging.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel.String(), false
	}
	return l.String(), true
}
