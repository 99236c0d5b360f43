package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/pkg/constants"
)

// Log output formats.
const (
	FormatAuto    = "auto"    // console on a terminal, json otherwise
	FormatJSON    = "json"    // one JSON object per line
	FormatConsole = "console" // human readable, colored unless NoColor
)

// Config describes how NewLoggerFromConfig builds a logger.
type Config struct {
	Level  string // trace, debug, info, warn, error, disabled
	Format string // FormatAuto, FormatJSON or FormatConsole
	// Output is stderr, stdout, discard or a file path. Files are appended to.
	Output string
	// TimeFormat applies to console output: kitchen, rfc3339 or a Go layout.
	TimeFormat string
	NoColor    bool
	AddCaller  bool
	// Fields are attached to every event.
	Fields map[string]any
}

// DefaultConfig logs info and above to stderr in the auto format.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     FormatAuto,
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     make(map[string]any),
	}
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level to
// match. Debug and trace loggers always include the caller.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(newWriter(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	for key, value := range cfg.Fields {
		ctx = addField(ctx, key, value)
	}
	return ctx.Logger()
}

// Configure replaces the default logger.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// ParseLevel accepts the zerolog level names plus "warning" and the
// aliases "none" and "off" for disabled. An empty level is info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "none", "off":
		return zerolog.Disabled, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// openOutput resolves cfg.Output and reports whether it is a terminal.
// An unwritable file falls back to stderr.
func openOutput(output string) (io.Writer, bool) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, stderrIsTerminal()
	case "stdout":
		return os.Stdout, isatty.IsTerminal(os.Stdout.Fd())
	case "discard", "none":
		return io.Discard, false
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, stderrIsTerminal()
	}
	return file, false
}

func newWriter(cfg *Config) io.Writer {
	out, terminal := openOutput(cfg.Output)

	format := strings.ToLower(cfg.Format)
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if terminal {
			format = FormatConsole
		}
	}
	if format != FormatConsole && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeLayout(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

func timeLayout(name string) string {
	switch strings.ToLower(name) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	}
	if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
		return name
	}
	return time.Kitchen
}

func addField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case bool:
		return ctx.Bool(key, v)
	case []string:
		return ctx.Strs(key, v)
	case time.Duration:
		return ctx.Dur(key, v)
	case error:
		if key == zerolog.ErrorFieldName || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}
