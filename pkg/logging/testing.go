package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures JSON log output for assertions.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger creates a trace-level JSON logger writing into a buffer.
// The global level is restored when the test ends.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	buf := &bytes.Buffer{}
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	logger := zerolog.New(buf).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Entries decodes each captured line. Lines that are not JSON are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	for _, line := range strings.Split(tl.Output(), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Entry returns the first entry with the given message.
func (tl *TestLogger) Entry(msg string) (map[string]any, bool) {
	for _, entry := range tl.Entries() {
		if entry[zerolog.MessageFieldName] == msg {
			return entry, true
		}
	}
	return nil, false
}

// Contains reports whether the raw output contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// Count returns the number of captured entries.
func (tl *TestLogger) Count() int {
	return len(tl.Entries())
}

// Clear drops the captured output.
func (tl *TestLogger) Clear() {
	tl.Buffer.Reset()
}

// AssertContains fails the test if the raw output does not contain substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.Contains(substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// AssertField fails the test unless the entry logged with msg carries
// key with a value that prints as want. JSON numbers decode as float64,
// so compare numbers by their printed form, e.g. "4".
func (tl *TestLogger) AssertField(t testing.TB, msg, key, want string) {
	t.Helper()
	entry, ok := tl.Entry(msg)
	if !ok {
		t.Errorf("no log entry %q\noutput:\n%s", msg, tl.Output())
		return
	}
	got, ok := entry[key]
	if !ok {
		t.Errorf("log entry %q has no field %q: %v", msg, key, entry)
		return
	}
	if s := stringify(got); s != want {
		t.Errorf("log entry %q field %q = %s, want %s", msg, key, s, want)
	}
}

// AssertCount fails the test unless exactly expected entries were logged.
func (tl *TestLogger) AssertCount(t testing.TB, expected int) {
	t.Helper()
	if actual := tl.Count(); actual != expected {
		t.Errorf("expected %d log entries, got %d\noutput:\n%s", expected, actual, tl.Output())
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
