package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	tests := []struct {
		name     string
		level    string
		expected []string
		absent   []string
	}{
		{
			name:     "debug level",
			level:    "debug",
			expected: []string{`"level":"debug"`, `"level":"info"`, `"level":"error"`},
		},
		{
			name:     "error level only",
			level:    "error",
			expected: []string{`"level":"error"`},
			absent:   []string{`"level":"info"`, `"level":"debug"`},
		},
		{
			name:     "unknown level falls back to info",
			level:    "chatty",
			expected: []string{`"level":"info"`},
			absent:   []string{`"level":"debug"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: path,
				Fields: map[string]any{"component": "test"},
			})

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			output := string(content)
			assert.Contains(t, output, `"component":"test"`)
			for _, want := range tt.expected {
				assert.Contains(t, output, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRequestID(ctx, "req-123")
	ctx = logging.WithStrain(ctx, "Blue Dream")
	ctx = logging.WithSource(ctx, "llm")
	ctx = logging.WithOperation(ctx, "import")
	ctx = logging.WithFields(ctx, map[string]any{"rows": 4, "used_llm": true})

	logging.FromContext(ctx).Info().Msg("scored")

	assert.Equal(t, "req-123", logging.RequestID(ctx))
	tl.AssertField(t, "scored", "request_id", "req-123")
	tl.AssertField(t, "scored", "strain", "Blue Dream")
	tl.AssertField(t, "scored", "source", "llm")
	tl.AssertField(t, "scored", "operation", "import")
	tl.AssertField(t, "scored", "rows", "4")
	tl.AssertField(t, "scored", "used_llm", "true")
	tl.AssertCount(t, 1)

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
}

func TestFromContextDefaults(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Empty(t, logging.RequestID(context.Background()))

	ctx := logging.WithError(context.Background(), nil)
	assert.Equal(t, context.Background(), ctx)
}

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	tl := logging.NewTestLogger(t)
	logging.SetDefault(*tl.Logger)

	logging.Warn().Str("strain", "Pink Kush").Msg("library seeded")
	tl.AssertContains(t, "library seeded")
	tl.AssertContains(t, "Pink Kush")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{" warning ", zerolog.WarnLevel, false},
		{"off", zerolog.Disabled, false},
		{"trace", zerolog.TraceLevel, false},
		{"chatty", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
